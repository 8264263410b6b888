package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"invoicepad/internal/compute"
	"invoicepad/internal/config"
	"invoicepad/internal/ledger"
	"invoicepad/internal/storage"
	filestore "invoicepad/internal/storage/file"
	"invoicepad/internal/storage/memory"
	pgstore "invoicepad/internal/storage/postgres"
	redisstore "invoicepad/internal/storage/redis"
	"invoicepad/internal/tui"
)

func main() {
	app := &cli.App{
		Name:  "invoicepad",
		Usage: "draft, finalize, and track sales invoices from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data-dir", Usage: "directory for the file storage backend"},
			&cli.StringFlag{Name: "storage", Usage: "storage backend: file, memory, redis, postgres"},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "print finalized invoices, newest first",
				Action: runHistory,
			},
			{
				Name:   "customers",
				Usage:  "print the customer directory",
				Action: runCustomers,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) config.Config {
	cfg := config.Load()
	if v := c.String("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v := c.String("storage"); v != "" {
		cfg.Backend = v
	}
	return cfg
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendFile:
		s, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case config.BackendMemory:
		return memory.New(), nil, nil
	case config.BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("redis backend selected but REDIS_ADDR is not set")
		}
		s := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis unavailable: %w", err)
		}
		return s, s.Close, nil
	case config.BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("postgres backend selected but DATABASE_URL is not set")
		}
		s, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres unavailable: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func open(c *cli.Context) (*ledger.Ledger, func() error, error) {
	cfg := loadConfig(c)
	store, closeFn, err := openStore(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}
	return ledger.Open(c.Context, store, cfg.StartNumber), closeFn, nil
}

func runTUI(c *cli.Context) error {
	led, closeFn, err := open(c)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer func() {
			if err := closeFn(); err != nil {
				log.Printf("close storage: %v", err)
			}
		}()
	}

	_, err = tea.NewProgram(tui.New(led), tea.WithAltScreen()).Run()
	return err
}

func runHistory(c *cli.Context) error {
	led, closeFn, err := open(c)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	history := led.History()
	if len(history) == 0 {
		fmt.Println("no invoices yet")
		return nil
	}
	for _, inv := range history {
		paid := ""
		if inv.Paid {
			paid = "  PAID"
		}
		fmt.Printf("#%s  %s  %s  %s%s\n",
			inv.InvoiceNumber, inv.Date, inv.CustomerName, compute.FormatTotal(inv.Total), paid)
	}
	return nil
}

func runCustomers(c *cli.Context) error {
	led, closeFn, err := open(c)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	customers := led.Customers()
	if len(customers) == 0 {
		fmt.Println("no customers yet")
		return nil
	}
	for _, name := range customers {
		fmt.Println(name)
	}
	return nil
}
