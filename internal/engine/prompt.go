package engine

// DefaultPrompt is the instructional prompt sent with every transcript when
// the user has not configured a custom one.
const DefaultPrompt = `Please provide a comprehensive analysis of this YouTube video transcript. Structure your response as follows:

---
tags: #KeyTopics #MainThemes #VideoAnalysis
---

# Summary
- Main topics and key points
- Important details and examples
- Key conclusions or takeaways

# Sources & References
- Books, articles, papers cited (with timestamps if available)
- Experts or authorities quoted
- Websites or resources mentioned
- Tools or technologies discussed

# Additional Context
- Methodological notes or limitations mentioned
- Related content suggestions
- Important timestamps for key moments

Note: If no sources/references are explicitly mentioned, focus on providing a thorough summary of the main content.`
