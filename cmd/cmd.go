// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand starts the HTTP extraction service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the lineup extraction web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// extractCommand runs a one-shot extraction from the terminal.
func extractCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Extract artist names from a lineup image",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "image",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "festival",
				Aliases: []string{"f"},
				Usage:   "Festival name for the CSV rows",
			},
			&cli.StringFlag{
				Name:    "year",
				Aliases: []string{"y"},
				Usage:   "Festival edition for the CSV rows",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "CSV output path (derived from festival name when omitted)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the extraction summary as JSON",
			},
		},
		Action: r.Extract,
	}
}

// setupCommand handles setup operations for configuration and the registry database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the artist registry and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "seed",
				Usage: "Seed the artist registry from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "CSV file with artist rows (name, slug, image_url)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupSeed,
			},
		},
	}
}

// uploadsCommand inspects generated files in the uploads directory.
func uploadsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "uploads",
		Usage: "Inspect generated images and CSVs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List generated files, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UploadsList,
			},
			{
				Name:    "ui",
				Aliases: []string{"browse"},
				Usage:   "Interactive TUI for browsing generated files",
				Action:  r.UploadsUI,
			},
		},
	}
}
