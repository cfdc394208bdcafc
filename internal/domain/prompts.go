package domain

// Prompt templates for the Gemini calls. Filled with fmt.Sprintf.

const scriptPrompt = `Generate a YouTube video script in %s mode with a %s tone and %s style.
You are an expert YouTube scriptwriter. Your task is to generate a unique and detailed YouTube video script while maintaining the meaning and context of the provided transcript.

### Instructions:
1. DO NOT summarize the transcript. Instead, expand on it with more details, engaging explanations, and additional insights.
2. Maintain a logical flow with pauses ("...") where needed for narration.
3. Add a YouTube intro hook based on the selected tone and style to grab attention instantly.
4. If the mode is long-form, ensure the script is detailed, engaging, and more descriptive than the original.
5. If the mode is short-form, keep the content concise but impactful, without summarizing.
6. If the mode is storytelling, extend the transcript significantly, adding rich descriptions, emotions, and narrative depth while preserving its meaning.
7. Rephrase sentences naturally to avoid repetition but retain the core ideas.
8. Avoid using escape sequences in the generated text.
9. Ensure the script can be easily converted into speech.

### Document Content (Reference):
%s

### Generate a new, detailed, and engaging YouTube script based on the above guidelines.
`

const styleAnalysisPrompt = `You are a language expert. Analyze the following transcript and describe:
1. The speaking style (e.g., informal, enthusiastic, educational, storytelling, motivational, etc.)
2. The speaking tone/accent (e.g., casual, serious, energetic, calming, etc.)

### Transcript:
%s

Just provide in simple text without markdown and give only one value for both:
- Style:
- Tone:
`

const titlesPrompt = `Generate exactly 5 viral YouTube video titles based on the following details:

Title: %s
Description: %s

Output each title on a new line.`

const emotionPrompt = `Look at the faces in this image and name the single dominant emotion
(e.g., happy, sad, angry, surprise, fear, neutral). Also transcribe any overlaid
text you can read. Reply in exactly two lines:
- Emotion: <one word>
- Text: <overlaid text or empty>
`

const thumbnailConceptPrompt = `You are a YouTube thumbnail designer. Using the attached image as the base,
describe a redesigned thumbnail concept for this request:

%s

Describe composition, text overlay, colors and focal point in under 120 words.`

const chatPrompt = `You are a YouTube automation assistant helping creators repurpose and remix content from PDFs and videos into engaging scripts, captions, or short-form ideas.

## OBJECTIVE:
Based on the user's query, select the most relevant content group (e.g. video script templates, business PDFs, or content breakdowns). Your job is to generate a clear, engaging, and audience-tailored script or content piece that feels original and useful, not copied.

## USER QUERY:
%s

## CONTENT SOURCES (PDFs, Video Transcripts, or Documents):
## IMPORTANT: If the user query references a specific group (e.g. "Group 2"), use only that group's content and ignore all others, even if present.
%s

## GROUP TONE(S):
%s

## GROUP STYLE(S):
%s

## CHAT HISTORY:
%s

## INSTRUCTIONS:
%s

---

## OUTPUT RULES:
- Focus only on relevant source groups based on the user's request.
- Rewrite key concepts using a fresh tone, hook, or format.
- If asked for a video script, structure output as:
  [HOOK] -> [VALUE] -> [EXAMPLES/PROOF] -> [CTA]
- Avoid repeating content verbatim unless explicitly requested.
- You can draw from both documents and video transcripts but remix them creatively.

---

## FINAL OUTPUT:
`

// refusalMarker aborts script persistence when the model declines.
const refusalMarker = "I can't help with this request."
