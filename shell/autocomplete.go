package shell

import "github.com/chzyer/readline"

var completer = readline.NewPrefixCompleter(
	readline.PcItem("new"),
	readline.PcItem("board"),
	readline.PcItem("show"),
	readline.PcItem("load"),
	readline.PcItem("solve"),
	readline.PcItem("find"),
	readline.PcItem("stats"),
	readline.PcItem("set",
		readline.PcItem("minlen"),
		readline.PcItem("dist",
			readline.PcItem("english"),
			readline.PcItem("english_qu"),
		),
	),
	readline.PcItem("script"),
	readline.PcItem("help",
		readline.PcItem("load"),
		readline.PcItem("new"),
		readline.PcItem("script"),
		readline.PcItem("solve"),
	),
	readline.PcItem("exit"),
)
