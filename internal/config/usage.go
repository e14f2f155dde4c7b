package config

import (
	"flag"
	"fmt"
)

// setCustomUsage configures the flag set's usage function: a short header
// followed by the flag list in declaration order.
func setCustomUsage(fs *flag.FlagSet, programName string) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "\n%s\n", programName)
		fmt.Fprintf(out, "Bit-complexity estimator for hard cryptographic problems.\n\n")
		fmt.Fprintf(out, "Usage:\n  %s [flags]\n\nFlags:\n", fs.Name())

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %-25s %s", flagSig, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
