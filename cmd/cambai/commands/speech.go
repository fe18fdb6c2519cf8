package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
)

var speechCmd = &cobra.Command{
	Use:   "speech",
	Short: "Text-to-speech service",
	Long: `Text-to-speech service.

Example request file (tts.yaml):
  text: Hello, this is a test message.
  voice_id: 20303
  language: 1
  gender: 2
  age: 30`,
}

var (
	speechFlags jobFlags

	speechText     string
	speechVoiceID  string
	speechLanguage string
	speechGender   int
	speechAge      int
)

var speechTTSCmd = &cobra.Command{
	Use:   "tts",
	Short: "Convert text to speech",
	Long: `Convert text to speech and wait for the audio.

Audio is FLAC. With --output-type raw_bytes (the default) it is written to -o,
the context's storage, or the working directory as cambai_tts_<task_id>.flac.
With --output-type file_url only the download URL is printed.

Examples:
  cambai speech tts --text "Hello" --voice-id 20303 --language 1 -o hello.flac
  cambai speech tts -f tts.yaml --output-type file_url --jq .audioUrl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req cambai.SpeechRequest
		if err := loadRequest(&req); err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("text") {
			req.Text = speechText
		}
		if flags.Changed("voice-id") {
			req.VoiceID = cambai.Locator(speechVoiceID)
		}
		if flags.Changed("language") {
			req.Language = cambai.Locator(speechLanguage)
		}
		if flags.Changed("gender") {
			req.Gender = cambai.Gender(speechGender)
		}
		if flags.Changed("age") {
			req.Age = speechAge
		}

		return runJob(cambai.JobTextToSpeech, &req, &speechFlags)
	},
}

func init() {
	f := speechTTSCmd.Flags()
	f.StringVar(&speechText, "text", "", "text to speak")
	f.StringVar(&speechVoiceID, "voice-id", "", "voice id (see 'cambai voice list')")
	f.StringVar(&speechLanguage, "language", "", "language id (see 'cambai dub languages')")
	f.IntVar(&speechGender, "gender", 0, "preferred voice gender: 1 male, 2 female")
	f.IntVar(&speechAge, "age", 0, "preferred voice age")
	addJobFlags(speechTTSCmd, cambai.JobTextToSpeech, &speechFlags)

	speechCmd.AddCommand(speechTTSCmd)
}
