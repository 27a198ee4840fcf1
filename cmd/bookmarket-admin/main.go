package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/auth"
	mongoRepo "github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// adminApp holds the connections a command needs. The caller must defer Close.
type adminApp struct {
	store *mongoRepo.Store
	cfg   *config.Config
	log   *logger.Logger
	close func()
}

func newAdminApp(ctx context.Context) (*adminApp, error) {
	_ = godotenv.Load()
	log := logger.NewLogger()
	cfg, err := config.LoadConfig(log)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	client, err := mongoRepo.Connect(ctx, cfg.MongoURI, log)
	if err != nil {
		return nil, err
	}
	return &adminApp{
		store: mongoRepo.NewStore(client, cfg.MongoDatabase, cfg.MongoUseTransactions, log),
		cfg:   cfg,
		log:   log,
		close: func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func (a *adminApp) Close() { a.close() }

var rootCmd = &cobra.Command{
	Use:   "bookmarket-admin",
	Short: "Operational tasks for the bookmarket service",
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing account by email",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		a, err := newAdminApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		accounts := usecase.NewAccountUsecase(usecase.Deps{
			Accounts: a.store.Accounts,
			Hasher:   auth.NewBcryptHasher(bcrypt.DefaultCost),
			Logger:   a.log,
		})
		admin, err := accounts.EnsureAdmin(ctx, name, email, password)
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin ready: %s <%s> (id %s)\n", admin.Name, admin.Email, admin.ID)
		return nil
	},
}

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes used by the service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		a, err := newAdminApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexes ensured on database %s\n", a.cfg.MongoDatabase)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("name", "", "Display name")
	createAdminCmd.Flags().String("email", "", "Login email")
	createAdminCmd.Flags().String("password", "", "Login password (at least 6 characters)")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(ensureIndexesCmd)
}
