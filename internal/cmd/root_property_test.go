package cmd

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genDateString generates date strings in the shapes git commit --date
// accepts. The value is opaque to the CLI and must survive flag parsing
// unchanged.
func genDateString() gopter.Gen {
	return gen.OneConstOf(
		"2024-01-15",
		"2024-01-15T10:30:00",
		"2024-01-15 10:30:00 +0200",
		"yesterday",
		"2 days ago",
		"@1705312200",
	)
}

// genSubcommandPath generates argument vectors that must resolve to a
// registered subcommand.
func genSubcommandPath() gopter.Gen {
	return gen.OneConstOf(
		"commit",
		"generate",
		"config",
		"history",
	)
}

// TestProperty_DateFlagRoundTrip verifies that any date value passed via
// --date or -d reaches the workflow verbatim, without normalization.
func TestProperty_DateFlagRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("--date passes through unchanged", prop.ForAll(
		func(date string) bool {
			cmd := NewCommitCmd()
			if err := cmd.ParseFlags([]string{"--date", date}); err != nil {
				return false
			}
			got, err := cmd.Flags().GetString("date")
			return err == nil && got == date
		},
		genDateString(),
	))

	properties.Property("-d shorthand passes through unchanged", prop.ForAll(
		func(date string) bool {
			cmd := NewCommitCmd()
			if err := cmd.ParseFlags([]string{"-d", date}); err != nil {
				return false
			}
			got, err := cmd.Flags().GetString("date")
			return err == nil && got == date
		},
		genDateString(),
	))

	properties.TestingRun(t)
}

// TestProperty_YesFlagForms verifies that --yes and -y are equivalent and
// that omitting both leaves confirmation enabled.
func TestProperty_YesFlagForms(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("--yes and -y agree", prop.ForAll(
		func(useShorthand bool) bool {
			cmd := NewCommitCmd()
			flag := "--yes"
			if useShorthand {
				flag = "-y"
			}
			if err := cmd.ParseFlags([]string{flag}); err != nil {
				return false
			}
			yes, err := cmd.Flags().GetBool("yes")
			return err == nil && yes
		},
		gen.Bool(),
	))

	properties.Property("confirmation stays on by default", prop.ForAll(
		func(date string) bool {
			cmd := NewCommitCmd()
			if err := cmd.ParseFlags([]string{"--date", date}); err != nil {
				return false
			}
			yes, err := cmd.Flags().GetBool("yes")
			return err == nil && !yes
		},
		genDateString(),
	))

	properties.TestingRun(t)
}

// TestProperty_SubcommandResolution verifies that every advertised
// subcommand resolves from the root command.
func TestProperty_SubcommandResolution(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("registered subcommands resolve by name", prop.ForAll(
		func(name string) bool {
			rootCmd := NewRootCmd("dev", "none", "unknown")
			found, _, err := rootCmd.Find([]string{name})
			return err == nil && found.Name() == name
		},
		genSubcommandPath(),
	))

	properties.TestingRun(t)
}
