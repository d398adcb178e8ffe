package feed

var defaultSources = []Source{
	{Key: "anthropic", URL: "https://www.anthropic.com/news/feed_anthropic_news.xml", Category: CategoryResearch, Name: "Anthropic"},
	{Key: "openai", URL: "https://openai.com/blog/rss.xml", Category: CategoryTechnology, Name: "OpenAI"},
	{Key: "google_ai", URL: "https://ai.googleblog.com/feeds/posts/default", Category: CategoryResearch, Name: "Google AI"},
	{Key: "mit_tech_review", URL: "https://www.technologyreview.com/feed/", Category: CategoryTechnology, Name: "MIT Technology Review"},
	{Key: "ai_news", URL: "https://artificialintelligence-news.com/feed/", Category: CategoryIndustry, Name: "AI News", Industry: true},
	{Key: "techcrunch_ai", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Category: CategoryBusiness, Name: "TechCrunch AI", Industry: true},
	{Key: "venturebeat_ai", URL: "https://venturebeat.com/ai/feed/", Category: CategoryBusiness, Name: "VentureBeat AI", Industry: true},
	{Key: "the_verge_ai", URL: "https://www.theverge.com/ai-artificial-intelligence/rss/index.xml", Category: CategoryTechnology, Name: "The Verge AI"},
	{Key: "wired_ai", URL: "https://www.wired.com/feed/tag/ai/latest/rss", Category: CategoryTechnology, Name: "Wired AI"},
	{Key: "arxiv_cs_ai", URL: "http://export.arxiv.org/rss/cs.AI", Category: CategoryResearch, Name: "ArXiv AI", Research: true},
	{Key: "xai_grok", URL: "https://x.ai/news/rss.xml", Category: CategoryTechnology, Name: "xAI (Grok)"},
	{Key: "microsoft_ai", URL: "https://blogs.microsoft.com/feed/category/ai/", Category: CategoryTechnology, Name: "Microsoft AI"},
	{Key: "meta_ai", URL: "https://ai.facebook.com/feed/", Category: CategoryTechnology, Name: "Meta AI"},
	{Key: "aperam_ai", URL: "https://aperam.com/news/rss.xml", Category: CategoryIndustry, Name: "Aperam AI"},
	{Key: "steel_industry", URL: "https://www.steel.org/feed/", Category: CategoryIndustry, Name: "Steel Industry News"},
	{Key: "mcp_ai", URL: "https://mcp.ai/feed/", Category: CategoryTechnology, Name: "MCP AI"},
	{Key: "gemini_ai", URL: "https://blog.google/products/ai/feed/", Category: CategoryTechnology, Name: "Google Gemini AI"},
	{Key: "claude_ai", URL: "https://www.anthropic.com/news/rss.xml", Category: CategoryTechnology, Name: "Claude AI"},
	{Key: "gpt_ai", URL: "https://openai.com/blog/rss.xml", Category: CategoryTechnology, Name: "GPT AI"},
	{Key: "chatgpt_ai", URL: "https://openai.com/blog/rss.xml", Category: CategoryTechnology, Name: "ChatGPT AI"},
	{Key: "bert_ai", URL: "https://ai.googleblog.com/feeds/posts/default", Category: CategoryTechnology, Name: "BERT AI"},
	{Key: "transformer_ai", URL: "https://ai.googleblog.com/feeds/posts/default", Category: CategoryTechnology, Name: "Transformer AI"},
	{Key: "llm_ai", URL: "https://openai.com/blog/rss.xml", Category: CategoryTechnology, Name: "LLM AI"},
	{Key: "robotics_ai", URL: "https://www.roboticsbusinessreview.com/feed/", Category: CategoryTechnology, Name: "Robotics AI"},
	{Key: "automation_ai", URL: "https://www.automation.com/rss", Category: CategoryTechnology, Name: "Automation AI"},
	{Key: "predictive_ai", URL: "https://www.predictiveanalyticsworld.com/feed/", Category: CategoryTechnology, Name: "Predictive AI"},
	{Key: "agentic_ai", URL: "https://www.agentic.ai/feed/", Category: CategoryTechnology, Name: "Agentic AI"},
	{Key: "ars_technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab", Category: CategoryTechnology, Name: "Ars Technica"},
	{Key: "reuters_tech", URL: "https://www.reuters.com/technology/feed/", Category: CategoryBusiness, Name: "Reuters Tech"},
	{Key: "hacker_news", URL: "https://hnrss.org/frontpage", Category: CategoryTechnology, Name: "Hacker News"},
}
