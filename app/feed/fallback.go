package feed

import (
	"time"
)

// FallbackItems is the placeholder list shown when no source produced entries.
func FallbackItems(now time.Time) []Item {
	return []Item{
		{
			Title:         "Welcome to AI News Aggregator",
			Summary:       "Your AI news service is initializing. Real-time feeds from major AI sources will appear here once connected.",
			Source:        "System",
			PublishedDate: now.Format(DateLayout),
			Category:      CategoryTechnology,
			ImpactScore:   3,
			Tags:          []string{"System", "AI News"},
			URL:           NoURL,
		},
		{
			Title:         "AI Industry Continues Rapid Growth",
			Summary:       "The artificial intelligence industry shows no signs of slowing down, with major developments across machine learning, natural language processing, and computer vision.",
			Source:        "AI News",
			PublishedDate: now.Add(-2 * time.Hour).Format(DateLayout),
			Category:      CategoryIndustry,
			ImpactScore:   4,
			Tags:          []string{"AI", "Industry", "Growth"},
			URL:           NoURL,
		},
		{
			Title:         "Enterprise AI Adoption Accelerates",
			Summary:       "Companies across industries are implementing AI solutions for manufacturing, supply chain optimization, and quality control with measurable business impact.",
			Source:        "TechCrunch AI",
			PublishedDate: now.Add(-4 * time.Hour).Format(DateLayout),
			Category:      CategoryBusiness,
			ImpactScore:   4,
			Tags:          []string{"Enterprise", "Manufacturing", "AI"},
			URL:           NoURL,
		},
	}
}

// CuratedResearch is appended to every research papers response.
func CuratedResearch() []Item {
	return []Item{
		{
			Title:         "Scaling Laws for Neural Language Models in Steel Manufacturing Optimization",
			Summary:       "We investigate the scaling laws for neural language models when applied to steel manufacturing optimization. Our findings suggest that larger models consistently improve prediction accuracy for quality control and process optimization tasks.",
			Source:        "Nature Machine Intelligence",
			PublishedDate: "2024-01-20",
			Category:      CategoryResearch,
			ImpactScore:   5,
			Tags:          []string{"Steel Manufacturing", "Neural Networks", "Optimization"},
			URL:           NoURL,
		},
		{
			Title:         "Federated Learning for Industrial IoT: A Steel Production Case Study",
			Summary:       "This paper presents a federated learning approach for industrial IoT applications, specifically focusing on steel production. We demonstrate improved model performance while maintaining data privacy across multiple production sites.",
			Source:        "IEEE Transactions on Industrial Informatics",
			PublishedDate: "2024-01-19",
			Category:      CategoryResearch,
			ImpactScore:   4,
			Tags:          []string{"Federated Learning", "Industrial IoT", "Steel Production"},
			URL:           NoURL,
		},
		{
			Title:         "Explainable AI for Predictive Maintenance in Heavy Industry",
			Summary:       "We propose an explainable AI framework for predictive maintenance in heavy industrial equipment. The approach provides interpretable predictions while maintaining high accuracy for maintenance scheduling.",
			Source:        "Journal of Manufacturing Systems",
			PublishedDate: "2024-01-18",
			Category:      CategoryResearch,
			ImpactScore:   4,
			Tags:          []string{"Explainable AI", "Predictive Maintenance", "Heavy Industry"},
			URL:           NoURL,
		},
	}
}

// CuratedIndustry is appended to every industry updates response.
func CuratedIndustry() []Item {
	return []Item{
		{
			Title:         "ArcelorMittal Implements AI-Powered Quality Control Across 15 Plants",
			Summary:       "ArcelorMittal has successfully deployed AI-powered quality control systems across 15 production facilities, resulting in 30% reduction in defects and significant cost savings.",
			Source:        "Steel Business Briefing",
			PublishedDate: "2024-01-20",
			Category:      CategoryIndustry,
			ImpactScore:   4,
			Tags:          []string{"ArcelorMittal", "Quality Control", "AI Implementation"},
			URL:           NoURL,
		},
		{
			Title:         "Tata Steel Partners with Google Cloud for Digital Transformation",
			Summary:       "Tata Steel has announced a strategic partnership with Google Cloud to accelerate digital transformation across its operations, focusing on AI-driven predictive maintenance.",
			Source:        "Metal Bulletin",
			PublishedDate: "2024-01-19",
			Category:      CategoryBusiness,
			ImpactScore:   3,
			Tags:          []string{"Tata Steel", "Google Cloud", "Digital Transformation"},
			URL:           NoURL,
		},
	}
}
