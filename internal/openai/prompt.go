package openai

// analysisPrompt is the fixed instruction sent with every bookshelf photo.
// The model must return a single JSON object with the exact shape below and
// nothing else.
const analysisPrompt = `Analyze this bookshelf image and identify all visible books. For each book, provide:
1. Book title (exact as shown on spine)
2. Author name
3. ISBN (if visible)
4. Your confidence score (0-100)

Then provide:
- 2-3 collection insights about reading patterns, genre diversity, or publication eras
- 3 personalized book recommendations based on the detected collection

Return your response as a valid JSON object with this exact structure:
{
  "detected_books": [
    {
      "title": "Book Title",
      "author": "Author Name",
      "isbn": "ISBN or null",
      "confidence_score": 85
    }
  ],
  "insights": [
    {
      "type": "genre_breakdown",
      "title": "Insight Title",
      "description": "Detailed insight description"
    }
  ],
  "recommendations": [
    {
      "title": "Recommended Book Title",
      "author": "Author Name",
      "reason": "Why this book is recommended based on detected collection",
      "match_score": 92,
      "based_on_books": "Book1, Book2"
    }
  ]
}

Important: Return ONLY the JSON object, no additional text.`
