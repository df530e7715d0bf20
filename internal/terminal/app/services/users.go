package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"posterminal/internal/terminal/app/paginate"
	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
	ports "posterminal/internal/terminal/ports/services"
	"posterminal/internal/terminal/resilience"
	"posterminal/pkg/logger"
)

// Константы для логирования.
const (
	LogUserCreate = "users service: create"
	LogUserUpdate = "users service: update"
	LogUserDelete = "users service: delete"

	ErrorListUsers  = "failed to list users"
	ErrorGetUser    = "failed to get user"
	ErrorCreateUser = "failed to create user"
	ErrorUpdateUser = "failed to update user"
	ErrorDeleteUser = "failed to delete user"
)

// UserServiceImpl реализует интерфейс UserService.
type UserServiceImpl struct {
	api        api.UsersAPI
	resilience *resilience.ServiceResilience
	list       *paginate.Paginator[entities.User]
}

var _ ports.UserService = (*UserServiceImpl)(nil)

// NewUserService создает сервис пользователей.
func NewUserService(usersAPI api.UsersAPI, pageLimit int) *UserServiceImpl {
	s := &UserServiceImpl{
		api:        usersAPI,
		resilience: resilience.NewServiceResilience("users-service"),
	}
	s.list = paginate.New(s.fetchPage, pageLimit)
	return s
}

func (s *UserServiceImpl) fetchPage(ctx context.Context, q entities.PageQuery) (*entities.Page[entities.User], error) {
	page, err := resilience.Do(ctx, s.resilience, "ListUsers", func() (*entities.Page[entities.User], error) {
		return s.api.ListUsers(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorListUsers, err)
	}
	return page, nil
}

func (s *UserServiceImpl) List(ctx context.Context) (ports.PageView[entities.User], error) {
	err := s.list.Load(ctx)
	return s.list.View(), err
}

func (s *UserServiceImpl) Search(ctx context.Context, query string) (ports.PageView[entities.User], error) {
	err := s.list.SetSearch(ctx, query)
	return s.list.View(), err
}

func (s *UserServiceImpl) NextPage(ctx context.Context) (ports.PageView[entities.User], error) {
	err := s.list.NextPage(ctx)
	return s.list.View(), err
}

func (s *UserServiceImpl) Get(ctx context.Context, id string) (*entities.User, error) {
	user, err := resilience.Do(ctx, s.resilience, "GetUser", func() (*entities.User, error) {
		return s.api.GetUser(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorGetUser, err)
	}
	return user, nil
}

func (s *UserServiceImpl) Create(ctx context.Context, in entities.UserInput) (*entities.User, error) {
	logger.Log(ctx).Info(ctx, LogUserCreate)

	user, err := s.api.CreateUser(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorCreateUser, err)
	}

	reloadQuietly(ctx, "users", s.list.Reload)
	return user, nil
}

func (s *UserServiceImpl) Update(ctx context.Context, id string, in entities.UserInput) (*entities.User, error) {
	logger.Log(ctx).Info(ctx, LogUserUpdate, zap.String("user_id", id))

	user, err := s.api.UpdateUser(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorUpdateUser, err)
	}

	reloadQuietly(ctx, "users", s.list.Reload)
	return user, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	logger.Log(ctx).Info(ctx, LogUserDelete, zap.String("user_id", id))

	if err := s.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrorDeleteUser, err)
	}

	reloadQuietly(ctx, "users", s.list.Reload)
	return nil
}
