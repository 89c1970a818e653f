package themes

// summaryPrompt is the system prompt for the tag summarization call. The
// response contract is three labeled comma-separated lists; each label is
// parsed independently so a partially well-formed response still yields tags.
const summaryPrompt = `You summarize what a movie or show feels like for readers looking for similar books.

Given a title, overview, and genres, respond with exactly three labeled lines:

Themes: <2-4 comma-separated themes>
Tropes: <2-4 comma-separated narrative tropes>
Mood: <2-3 comma-separated mood words>

Use short lowercase phrases. No other text.`
