package writer

import (
	"strings"

	"github.com/moritamori/bloggen/app/store"
)

// Command is a recognized directive token in feedback text.
type Command string

// recognized directive commands
const (
	CommandRegenerate Command = "/regenerate"
	CommandShorter    Command = "/shorter"
	CommandLonger     Command = "/longer"
	CommandCasual     Command = "/casual"
	CommandFormal     Command = "/formal"
	CommandPublish    Command = "/publish"
)

// commandPriority defines the match order when a comment contains
// several directive tokens, first listed wins.
var commandPriority = []Command{
	CommandRegenerate,
	CommandShorter,
	CommandLonger,
	CommandCasual,
	CommandFormal,
	CommandPublish,
}

// canned supplementary instructions per directive, /regenerate and
// /publish carry none
var directives = map[Command]string{
	CommandShorter: "記事をより短く、簡潔にまとめ直してください。",
	CommandLonger:  "記事をより詳しく、内容を掘り下げて書き直してください。",
	CommandCasual:  "より砕けた、カジュアルな文体に書き直してください。",
	CommandFormal:  "よりフォーマルで、ビジネス向けの文体に書き直してください。",
}

// DetectCommand finds a directive token in the comment text by
// substring containment. An unrecognized directive yields an empty
// command, meaning a generic regenerate.
func DetectCommand(comment string) Command {
	for _, cmd := range commandPriority {
		if strings.Contains(comment, string(cmd)) {
			return cmd
		}
	}
	return ""
}

// Directive returns the canned instruction for the command, empty when
// the command has none.
func Directive(cmd Command) string { return directives[cmd] }

// FeedbackRequest combines feedback text, an optional directive and
// the article being revised. Transient, constructed per feedback event.
type FeedbackRequest struct {
	Feedback string
	Command  Command
	Original store.Article
}
