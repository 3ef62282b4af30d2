package conflict

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt returns a Decider that asks on out and reads answers from in.
// It first asks whether to overwrite, then whether to rename. An answer
// starting with y, Y, j or J means yes. Anything else, including an empty
// line or end of input, means no.
func Prompt(in io.Reader, out io.Writer) Decider {
	reader := bufio.NewReader(in)
	ask := func(question string) (bool, error) {
		fmt.Fprintf(out, "%s > ", question)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		line = strings.TrimSpace(line)
		return line != "" && strings.ContainsRune("yYjJ", rune(line[0])), nil
	}

	return func(existingID string) (Choice, error) {
		fmt.Fprintf(out, "  %s already exists\n", existingID)
		yes, err := ask("overwrite it?")
		if err != nil {
			return Abort, err
		}
		if yes {
			return Overwrite, nil
		}
		if yes, err = ask("rename it?"); err != nil {
			return Abort, err
		}
		if yes {
			return RenameAndAdd, nil
		}
		fmt.Fprintln(out, "no action; reference not saved")
		return Abort, nil
	}
}
