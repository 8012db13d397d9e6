package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "vmapp",
		Usage: "Resolve a three-tier web application topology into a deployable resource plan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "AWS credential profile name (e.g., dev, prod)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "Resolve a configuration file into the full resource plan",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to the configuration JSON",
						Value: "vmapp.json",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Write the plan to a file instead of stdout",
					},
				},
				Action: func(c *cli.Context) error {
					return runPlan(c.String("config"), c.String("out"))
				},
			},
			{
				Name:  "init",
				Usage: "Interactively build a configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Where to write the configuration",
						Value: "vmapp.json",
					},
				},
				Action: func(c *cli.Context) error {
					return runInit(c.String("out"))
				},
			},
			{
				Name:  "publish",
				Usage: "Resolve a configuration and publish the plan for the reconciliation engine",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to the configuration JSON",
						Value: "vmapp.json",
					},
				},
				Action: func(c *cli.Context) error {
					return runPublish(c.Context, c.String("config"), c.String("profile"))
				},
			},
			{
				Name:  "status",
				Usage: "Show the currently published plan for an app",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "app",
						Usage:    "Application name",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return runStatus(c.Context, c.String("app"), c.String("profile"))
				},
			},
		},
		// If user just types "vmapp", show help
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
