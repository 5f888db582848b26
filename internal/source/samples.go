package source

import (
	"time"

	"blogfront/internal/domain"
)

var (
	catDevelopment = domain.Category{ID: 1, Name: "Development"}
	catRemoteWork  = domain.Category{ID: 2, Name: "Remote Work"}
	catBackend     = domain.Category{ID: 3, Name: "Backend"}
	catCSS         = domain.Category{ID: 4, Name: "CSS"}
	catCareer      = domain.Category{ID: 5, Name: "Career"}
	catWeb3        = domain.Category{ID: 6, Name: "Web3"}

	tagReact         = domain.Tag{ID: 1, Name: "React"}
	tagTypeScript    = domain.Tag{ID: 2, Name: "TypeScript"}
	tagArchitecture  = domain.Tag{ID: 3, Name: "Architecture"}
	tagBestPractices = domain.Tag{ID: 4, Name: "Best Practices"}
	tagPerformance   = domain.Tag{ID: 5, Name: "Performance"}
	tagSecurity      = domain.Tag{ID: 6, Name: "Security"}
)

const typescriptContent = `<p>Building scalable React applications is one of the most challenging aspects of modern web development. When you add TypeScript to the mix, you get powerful type safety that can help prevent bugs and improve developer experience.</p>
<h2>Why TypeScript for React?</h2>
<ul>
<li><strong>Type Safety:</strong> Catch errors at compile time rather than runtime</li>
<li><strong>Better IDE Support:</strong> Enhanced autocomplete, refactoring, and navigation</li>
<li><strong>Self-Documenting Code:</strong> Types serve as inline documentation</li>
</ul>
<h2>Conclusion</h2>
<p>Building scalable React applications with TypeScript requires careful planning, consistent patterns, and attention to both developer experience and application performance.</p>`

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// DefaultArticles returns the sample articles served by the static source
// when no file is configured.
func DefaultArticles() []domain.Article {
	return []domain.Article{
		{
			ID:        "1",
			Title:     "Building Scalable React Applications with TypeScript",
			Slug:      "building-scalable-react-applications-with-typescript",
			Excerpt:   "Learn how to structure large React applications using TypeScript, focusing on maintainability, type safety, and developer experience.",
			Content:   typescriptContent,
			ReadTime:  8,
			CreatedAt: day(2024, time.December, 15),
			Category:  catDevelopment,
			Tags:      []domain.Tag{tagReact, tagTypeScript, tagArchitecture, tagBestPractices},
		},
		{
			ID:        "2",
			Title:     "The Future of Remote Work: Tools and Strategies",
			Slug:      "the-future-of-remote-work-tools-and-strategies",
			Excerpt:   "Exploring the evolution of remote work culture and the essential tools that make distributed teams successful in 2024.",
			ReadTime:  6,
			CreatedAt: day(2024, time.December, 12),
			Category:  catRemoteWork,
			Tags:      []domain.Tag{},
		},
		{
			ID:        "3",
			Title:     "Mastering Node.js Performance Optimization",
			Slug:      "mastering-nodejs-performance-optimization",
			Excerpt:   "Deep dive into Node.js performance bottlenecks and practical techniques to optimize your backend applications.",
			ReadTime:  12,
			CreatedAt: day(2024, time.December, 10),
			Category:  catBackend,
			Tags:      []domain.Tag{tagPerformance},
		},
		{
			ID:        "4",
			Title:     "CSS Grid vs Flexbox: When to Use What",
			Slug:      "css-grid-vs-flexbox-when-to-use-what",
			Excerpt:   "A comprehensive guide to choosing between CSS Grid and Flexbox for different layout scenarios with practical examples.",
			ReadTime:  10,
			CreatedAt: day(2024, time.December, 8),
			Category:  catCSS,
			Tags:      []domain.Tag{},
		},
		{
			ID:        "5",
			Title:     "Building a Personal Brand as a Developer",
			Slug:      "building-a-personal-brand-as-a-developer",
			Excerpt:   "Strategies for establishing your online presence, creating valuable content, and networking in the tech community.",
			ReadTime:  7,
			CreatedAt: day(2024, time.November, 28),
			Category:  catCareer,
			Tags:      []domain.Tag{},
		},
		{
			ID:        "6",
			Title:     "Introduction to Web3 Development",
			Slug:      "introduction-to-web3-development",
			Excerpt:   "Getting started with blockchain development, smart contracts, and decentralized applications using modern tools.",
			ReadTime:  15,
			CreatedAt: day(2024, time.November, 25),
			Category:  catWeb3,
			Tags:      []domain.Tag{},
		},
		{
			ID:        "7",
			Title:     "Advanced React Hooks Patterns",
			Slug:      "advanced-react-hooks-patterns",
			Excerpt:   "Explore advanced patterns with React hooks including custom hooks, context optimization, and performance considerations.",
			ReadTime:  11,
			CreatedAt: day(2024, time.November, 20),
			Category:  catDevelopment,
			Tags:      []domain.Tag{tagReact, tagPerformance},
		},
		{
			ID:        "8",
			Title:     "Database Design Best Practices",
			Slug:      "database-design-best-practices",
			Excerpt:   "Essential principles for designing efficient, scalable databases with proper normalization and indexing strategies.",
			ReadTime:  9,
			CreatedAt: day(2024, time.October, 15),
			Category:  catBackend,
			Tags:      []domain.Tag{tagBestPractices},
		},
		{
			ID:        "9",
			Title:     "Modern CSS Techniques for 2024",
			Slug:      "modern-css-techniques-for-2024",
			Excerpt:   "Latest CSS features including container queries, cascade layers, and modern layout techniques for responsive design.",
			ReadTime:  8,
			CreatedAt: day(2024, time.October, 10),
			Category:  catCSS,
			Tags:      []domain.Tag{},
		},
		{
			ID:        "10",
			Title:     "API Security Best Practices",
			Slug:      "api-security-best-practices",
			Excerpt:   "Comprehensive guide to securing REST APIs including authentication, authorization, rate limiting, and data validation.",
			ReadTime:  13,
			CreatedAt: day(2024, time.September, 22),
			Category:  catBackend,
			Tags:      []domain.Tag{tagSecurity, tagBestPractices},
		},
	}
}
