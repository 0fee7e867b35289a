package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Report summarizes one reorder of a file. It is the payload handed to the
// reporting sink after fix/check/deps, rendered in the requested format.
type Report struct {
	File              string              `yaml:"file" json:"file"`
	Declarations      int                 `yaml:"declarations" json:"declarations"`
	DuplicatesRemoved []string            `yaml:"duplicates_removed,omitempty" json:"duplicates_removed,omitempty"`
	Malformed         []string            `yaml:"malformed,omitempty" json:"malformed,omitempty"`
	Cyclic            bool                `yaml:"cyclic" json:"cyclic"`
	Cycle             []string            `yaml:"cycle,omitempty" json:"cycle,omitempty"`
	InOrder           *bool               `yaml:"in_order,omitempty" json:"in_order,omitempty"`
	Dependencies      map[string][]string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	BackupPath        string              `yaml:"backup,omitempty" json:"backup,omitempty"`
	DryRun            bool                `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// Render writes the report to w in the given format.
func Render(w io.Writer, f Format, report *Report) error {
	switch f {
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		return renderText(w, report)
	}
}

// renderText writes the human-readable report.
func renderText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "%s\n", r.File)
	fmt.Fprintf(w, "  declarations: %d\n", r.Declarations)

	if len(r.DuplicatesRemoved) > 0 {
		fmt.Fprintf(w, "  duplicates removed: %d\n", len(r.DuplicatesRemoved))
		for _, name := range r.DuplicatesRemoved {
			fmt.Fprintf(w, "    - %s\n", name)
		}
	}

	if len(r.Malformed) > 0 {
		fmt.Fprintf(w, "  unbalanced bodies (span extended to end of file):\n")
		for _, name := range r.Malformed {
			fmt.Fprintf(w, "    - %s\n", name)
		}
	}

	if r.Cyclic {
		fmt.Fprintf(w, "  cycle detected")
		if len(r.Cycle) > 0 {
			fmt.Fprintf(w, ": %s", joinArrow(r.Cycle))
		}
		fmt.Fprintln(w)
	}

	if r.InOrder != nil {
		if *r.InOrder {
			fmt.Fprintf(w, "  already in dependency order\n")
		} else {
			fmt.Fprintf(w, "  NOT in dependency order\n")
		}
	}

	if len(r.Dependencies) > 0 {
		fmt.Fprintf(w, "  dependencies:\n")
		names := make([]string, 0, len(r.Dependencies))
		for name := range r.Dependencies {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			deps := r.Dependencies[name]
			if len(deps) == 0 {
				continue
			}
			fmt.Fprintf(w, "    %s: %v\n", name, deps)
		}
	}

	if r.BackupPath != "" {
		fmt.Fprintf(w, "  backup: %s\n", r.BackupPath)
	}
	if r.DryRun {
		fmt.Fprintf(w, "  dry run: no files written\n")
	}

	return nil
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
