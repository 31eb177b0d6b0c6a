// ABOUTME: Prompt templates for the three insight generation paths
// ABOUTME: Document analysis on upload, contextual insight per question, summarization
package insights

const documentAnalysisPrompt = `Analyze the following document content and provide key insights:

Document: %s
Content: %s

Please provide:
1. Main topics and themes (3-5 key points)
2. Document type and purpose
3. Key findings or important information
4. Potential questions someone might ask about this document

Keep your analysis concise and actionable.

Analysis:`

const contextualInsightsPrompt = `Based on the user's question and the document content, provide contextual insights:

User Question: %s
Relevant Content: %s

Please provide:
1. How this question relates to the document's main themes
2. Additional context or background information
3. Related concepts or areas the user might want to explore
4. Potential follow-up questions

Insights:`

const summaryPrompt = `Create a comprehensive summary of the document(s):

Content: %s

Please provide:
1. Executive Summary (2-3 sentences)
2. Key Points (5-7 bullet points)
3. Important Details or Data
4. Conclusions or Recommendations (if any)

Summary:`
