package server

import (
	"PeerFund_Auth/config"
	"PeerFund_Auth/internal"
	"PeerFund_Auth/internal/model"
	"PeerFund_Auth/internal/ports"
	"PeerFund_Auth/internal/repository"
	"PeerFund_Auth/internal/service"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MemberStore: хранилище пользователей, которое умеет их создавать.
type MemberStore interface {
	ports.MemberRepositoryInterface
	Save(ctx context.Context, member *model.Member) (*model.Member, error)
}

func SetupDatabase(ctx context.Context, cfg config.DatabaseConfig) (*internal.Database, error) {
	database, err := internal.NewDatabaseConnection(ctx, cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения: %w", err)
	}
	return database, nil
}

// SetupMemberStore выбирает хранилище по драйверу. Возвращаемая функция
// закрывает соединение с БД; для драйвера "memory" она ничего не делает.
func SetupMemberStore(ctx context.Context, cfg *config.Config) (MemberStore, func() error, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := repository.NewMemoryMemberRepository()
		if err := Bootstrap(ctx, store, cfg.Bootstrap); err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}

	database, err := SetupDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	store := repository.NewMemberRepository(database)
	if err := Bootstrap(ctx, store, cfg.Bootstrap); err != nil {
		_ = database.Close()
		return nil, nil, err
	}

	return store, database.Close, nil
}

// Bootstrap создает пользователя из конфигурации, если он задан и еще не существует.
func Bootstrap(ctx context.Context, store MemberStore, cfg config.BootstrapConfig) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}
	if _, err := store.FindByUsername(ctx, cfg.Username); err == nil {
		return nil
	}

	hash, err := service.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	if _, err := store.Save(ctx, &model.Member{Username: cfg.Username, Password: hash, Roles: cfg.Roles}); err != nil {
		return fmt.Errorf("не удалось создать пользователя %q: %w", cfg.Username, err)
	}

	slog.Info("member_bootstrapped", slog.String("username", cfg.Username))
	return nil
}

func SetupServer(cfg config.ServerConfig) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	return server, router
}
