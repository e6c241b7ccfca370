package summarizer

const defaultPrompt = "Please summarize the following audio."

const meetingPrompt = `The attached audio file is a presentation or the conversation in the meeting.
Your task is to summarize every detail that mentioned in the audio file.
If it is a presentation:
1. Summarize every detail that the speaker mentioned.
2. If there are many speakers in the presentation, summarize every detail that each speaker mentioned.
If it is a conversation in the meeting:
1. Summarize every detail in the meeting.
2. Summarize what each person plans to do in this week.`

const bulletsPrompt = "- Please summarize the following audio in bullet points:"

var prompts = map[string]string{
	"default": defaultPrompt,
	"meeting": meetingPrompt,
	"bullets": bulletsPrompt,
}

// Instruction returns the named summary instruction, or the default one.
func Instruction(name string) string {
	if p, ok := prompts[name]; ok {
		return p
	}
	return defaultPrompt
}
