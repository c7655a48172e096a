// Package command parses the query mini-language: a one or two digit query
// id, an optional single-letter output-format flag glued to it, then
// space-separated arguments where a double-quoted argument keeps its spaces.
//
//	1 HFnn3Jng3
//	5F OPO "2023/06/01 00:00:00" "2023/06/30 23:59:59"
package command

import "strings"

// Command is one parsed input line.
type Command struct {
	Query   int
	Labeled bool
	Args    []string
}

// Parse parses one command line. The bool reports whether the line matches
// the grammar; callers treat a non-matching line as a no-op command.
func Parse(line string) (Command, bool) {
	line = strings.TrimRight(line, "\r\n")
	head := line
	rest := ""
	if sp := strings.IndexAny(line, " \t"); sp >= 0 {
		head, rest = line[:sp], line[sp:]
	}

	var cmd Command
	i := 0
	for i < len(head) && i < 2 && head[i] >= '0' && head[i] <= '9' {
		cmd.Query = cmd.Query*10 + int(head[i]-'0')
		i++
	}
	if i == 0 {
		return Command{}, false
	}
	switch {
	case i == len(head):
	case i+1 == len(head) && isLetter(head[i]):
		cmd.Labeled = true
	default:
		return Command{}, false
	}
	cmd.Args = lexArgs(rest)
	return cmd, true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// lexArgs tokenizes the argument tail: spaces and tabs delimit, a
// double-quoted region keeps its spaces, a doubled quote inside one is a
// literal quote. Adjacent delimiters collapse.
func lexArgs(s string) []string {
	var tokens []string
	var sb strings.Builder
	inQuotes := false
	started := false
	flush := func() {
		if started {
			tokens = append(tokens, sb.String())
			sb.Reset()
			started = false
		}
	}
	i := 0
	for i < len(s) {
		switch ch := s[i]; ch {
		case '"':
			if inQuotes {
				if i+1 < len(s) && s[i+1] == '"' {
					sb.WriteByte('"')
					i += 2
					continue
				}
				inQuotes = false
			} else {
				inQuotes = true
				started = true
			}
			i++
		case ' ', '\t':
			if inQuotes {
				sb.WriteByte(ch)
				i++
			} else {
				flush()
				for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
					i++
				}
			}
		default:
			sb.WriteByte(ch)
			started = true
			i++
		}
	}
	flush()
	return tokens
}
