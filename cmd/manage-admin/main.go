package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jirorimi/cup-registration/internal/config"
	"github.com/jirorimi/cup-registration/internal/db"
	"github.com/jirorimi/cup-registration/internal/service"
	"github.com/jirorimi/cup-registration/internal/store"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp builds the CLI. Every command opens its own connection from the
// --config file and environment.
func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "manage-admin",
		Usage:     "grant or revoke tournament administrator rights",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			{
				Name:      "grant",
				Usage:     "make the user with the given Discord id an administrator",
				ArgsUsage: "<discord_id>",
				Action: func(c *cli.Context) error {
					return withUsers(c, func(users *service.UserService) error {
						id, err := discordID(c)
						if err != nil {
							return err
						}
						u, changed, err := users.GrantAdmin(c.Context, id)
						if err != nil {
							return err
						}
						if !changed {
							fmt.Fprintf(c.App.Writer, "%s is already an admin\n", u.DisplayName())
							return nil
						}
						fmt.Fprintf(c.App.Writer, "granted admin to %s\n", u.DisplayName())
						return nil
					})
				},
			},
			{
				Name:      "revoke",
				Usage:     "remove administrator rights from the user with the given Discord id",
				ArgsUsage: "<discord_id>",
				Action: func(c *cli.Context) error {
					return withUsers(c, func(users *service.UserService) error {
						id, err := discordID(c)
						if err != nil {
							return err
						}
						u, changed, err := users.RevokeAdmin(c.Context, id)
						if err != nil {
							return err
						}
						if !changed {
							fmt.Fprintf(c.App.Writer, "%s is not an admin\n", u.DisplayName())
							return nil
						}
						fmt.Fprintf(c.App.Writer, "revoked admin from %s\n", u.DisplayName())
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "list administrators",
				Action: func(c *cli.Context) error {
					return withUsers(c, func(users *service.UserService) error {
						admins, err := users.ListAdmins(c.Context)
						if err != nil {
							return err
						}
						if len(admins) == 0 {
							fmt.Fprintln(c.App.Writer, "no admins")
							return nil
						}
						for _, u := range admins {
							fmt.Fprintf(c.App.Writer, "%s\t%s\n", utils.OrZero(u.ProviderID), u.DisplayName())
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "database migrations",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply all pending migrations",
						Action: func(c *cli.Context) error {
							conn, err := open(c)
							if err != nil {
								return err
							}
							defer conn.Close()
							if err := db.RunMigrations(conn); err != nil {
								return err
							}
							fmt.Fprintln(c.App.Writer, "migrations applied")
							return nil
						},
					},
				},
			},
		},
	}
}

func discordID(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(fmt.Sprintf("usage: %s %s <discord_id>", c.App.Name, c.Command.Name), 1)
	}
	return c.Args().First(), nil
}

func open(c *cli.Context) (*sqlx.DB, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return db.Open(cfg.Database.Driver, cfg.Database.URL)
}

func withUsers(c *cli.Context, fn func(*service.UserService) error) error {
	conn, err := open(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	err = fn(service.NewUserService(conn, store.NewUserStore(conn)))
	if errors.Is(err, service.ErrUserNotFound) {
		return cli.Exit(err.Error(), 1)
	}
	return err
}
