package main

import (
	"os"
	"strings"

	"shatilah/internal/catalog"
	"shatilah/internal/cli"
)

func isDayName(s string) bool {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "today") {
		return true
	}
	_, ok := catalog.Lookup(s)
	return ok
}

// rewriteDayShortcutArgs turns `shatilah <day>` into `shatilah day <day>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first, so the first positional
// token is searched for rather than argv[1].
func rewriteDayShortcutArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--backend":   true,
		"--format":    true,
		"--locale":    true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// Unknown and bool flags take no value; --flag=value carries its own.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if isDayName(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "day")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDayShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
