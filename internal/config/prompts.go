package config

import "fmt"

// Prompt templates are filled with fmt.Sprintf. Clean receives the source,
// Explain receives the language label and then the code.
const (
	cleanPromptArgs   = 1
	explainPromptArgs = 2
)

// Validate checks that each prompt template consumes exactly the arguments it
// is given. A literal percent sign must be written as "%%".
func (c *Config) Validate() error {
	if err := checkTemplate("clean", c.Prompts.Clean, cleanPromptArgs); err != nil {
		return err
	}
	return checkTemplate("explain", c.Prompts.Explain, explainPromptArgs)
}

func checkTemplate(name, tmpl string, want int) error {
	got, err := countVerbs(tmpl)
	if err != nil {
		return fmt.Errorf("prompts.%s: %w", name, err)
	}
	if got != want {
		return fmt.Errorf("prompts.%s: expected %d formatting verb(s), found %d (write %%%% for a literal percent sign)", name, want, got)
	}
	return nil
}

// countVerbs counts fmt verbs in tmpl, skipping "%%".
func countVerbs(tmpl string) (int, error) {
	n := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' {
			continue
		}
		if i+1 >= len(tmpl) {
			return 0, fmt.Errorf("trailing %% at end of template")
		}
		if tmpl[i+1] == '%' {
			i++
			continue
		}
		if tmpl[i+1] == '[' || tmpl[i+1] == '*' {
			return 0, fmt.Errorf("argument indexes and '*' widths are not supported")
		}
		n++
	}
	return n, nil
}
