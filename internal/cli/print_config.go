package cli

import (
	"context"

	"github.com/calvinalkan/taskboard/internal/config"
)

func cmdPrintConfig(s *Session) *Command {
	return &Command{
		Flags:    newFlagSet("print-config"),
		Usage:    "print-config",
		Short:    "Show resolved configuration",
		TopLevel: true,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := config.Format(s.cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)
			o.Println("")
			o.Println("# Sources:")

			if s.cfg.Sources.Global != "" {
				o.Println("#   global:", s.cfg.Sources.Global)
			}

			if s.cfg.Sources.Project != "" {
				o.Println("#   project:", s.cfg.Sources.Project)
			}

			if s.cfg.Sources.Global == "" && s.cfg.Sources.Project == "" {
				o.Println("#   (using defaults only)")
			}

			return nil
		},
	}
}
