// Package flagx lets several loaders share one command line: each loader picks
// out only the flags it owns and ignores the rest (subcommands, positional
// arguments, flags that belong to cobra).
package flagx

import (
	"flag"
	"strings"
)

// Spec lists the flag names a loader owns. Valued flags consume the following
// argument when it does not look like a flag; Bools never consume a value.
type Spec struct {
	Valued []string
	Bools  []string
}

// FilterArgs keeps the valued flags from args (with their values) and drops
// everything else. It accepts both "-f value" and "-f=value" forms.
func FilterArgs(args []string, allowedFlags []string) []string {
	return Filter(args, Spec{Valued: allowedFlags})
}

// Filter returns the arguments matching spec, in their original order.
// Double-dash spellings ("--name") are matched against single-dash names
// ("-name") as well, mirroring the standard flag package.
func Filter(args []string, spec Spec) []string {
	valued := toSet(spec.Valued)
	bools := toSet(spec.Bools)

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if lookup(valued, name) || lookup(bools, name) {
				filtered = append(filtered, arg)
			}
			continue
		}

		if lookup(bools, arg) {
			filtered = append(filtered, arg)
			continue
		}

		if lookup(valued, arg) {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Empty when neither is present.
func JsonConfigFlags(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func lookup(set map[string]struct{}, name string) bool {
	if _, ok := set[name]; ok {
		return true
	}
	if strings.HasPrefix(name, "--") {
		_, ok := set[name[1:]]
		return ok
	}
	return false
}
