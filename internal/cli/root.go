package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/martijn/usersvc/internal/core/repository"
	"github.com/martijn/usersvc/internal/core/service"
	"github.com/martijn/usersvc/internal/infrastructure/postgres"
	"github.com/martijn/usersvc/internal/infrastructure/sqlite"
	"github.com/martijn/usersvc/internal/logging"
	"github.com/martijn/usersvc/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "usersvc",
	Short: "usersvc - user record service",
	Long: `usersvc stores user records (username, email, password, age) and serves
them over a JSON REST API.

It provides:
- Create, read, update, delete and clear operations
- Email uniqueness checks on create and update
- SQLite (default) or PostgreSQL storage
- Admin commands that go through the same validation rules`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// Services holds all initialized services
type Services struct {
	Logger      logging.Logger
	UserRepo    repository.UserRepository
	UserService *service.UserService

	closers []io.Closer
}

// initServices opens the logger and the configured store and wires the service
func initServices(ctx context.Context) (*Services, error) {
	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	s := &Services{Logger: logger, closers: []io.Closer{logCloser}}

	switch cfg.StoreDriver {
	case "postgres":
		db, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.closers = append(s.closers, db)
		s.UserRepo = postgres.NewUserRepository(db.DB)
	default:
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.closers = append(s.closers, db)
		s.UserRepo = sqlite.NewUserRepository(db)
	}

	s.UserService = service.NewUserService(s.UserRepo, cfg.HashPasswords)

	logger.Debug(ctx, "services initialized", "store", cfg.StoreDriver, "hash_passwords", cfg.HashPasswords)
	return s, nil
}

// Close closes all resources, most recently opened first
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i].Close()
	}
}
