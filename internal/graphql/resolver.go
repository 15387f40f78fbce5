package graphql

import (
	"context"
	"errors"
	"strconv"
	"time"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"user-graph/internal/domain"
	"user-graph/internal/service"
)

// Resolver es la raíz del esquema. Los resolvers delegan en los servicios
// y traducen sus errores al conjunto cerrado de resolverError.
type Resolver struct {
	logger  *zap.Logger
	userSvc *service.UserService
	jwtSvc  *service.JWTService
}

func NewResolver(logger *zap.Logger, userSvc *service.UserService, jwtSvc *service.JWTService) *Resolver {
	return &Resolver{
		logger:  logger,
		userSvc: userSvc,
		jwtSvc:  jwtSvc,
	}
}

// Users resuelve `users: [User!]!`.
func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.userSvc.ListUsers(ctx)
	if err != nil {
		r.logger.Error("list users failed", zap.Error(err))
		return nil, errInternal
	}
	resolvers := make([]*userResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &userResolver{user: u})
	}
	return resolvers, nil
}

// User resuelve `user(id: ID!): User`. Un id no numérico o inexistente
// resuelve null.
func (r *Resolver) User(ctx context.Context, args struct{ ID graphqlgo.ID }) (*userResolver, error) {
	id, err := strconv.ParseInt(string(args.ID), 10, 64)
	if err != nil {
		return nil, nil
	}
	user, err := r.userSvc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, nil
		}
		r.logger.Error("get user failed", zap.Error(err), zap.Int64("id", id))
		return nil, errInternal
	}
	return &userResolver{user: user}, nil
}

// Me resuelve `me: User`. Sin token válido en el contexto resuelve null,
// nunca error; un token válido de un usuario ya borrado también es null.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	userID, ok := service.UserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}
	user, err := r.userSvc.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return nil, nil
		}
		r.logger.Error("resolve me failed", zap.Error(err), zap.Int64("user_id", userID))
		return nil, errInternal
	}
	return &userResolver{user: user}, nil
}

// CreateUser resuelve la mutación createUser.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Name, Email, Password string }) (*userResolver, error) {
	user, err := r.userSvc.CreateUser(ctx, service.CreateUserInput{
		Name:     args.Name,
		Email:    args.Email,
		Password: args.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return nil, errEmailTaken
		case errors.Is(err, service.ErrInvalidEmail):
			return nil, errInvalidEmail
		default:
			r.logger.Error("create user failed", zap.Error(err))
			return nil, errInternal
		}
	}
	return &userResolver{user: user}, nil
}

// Login resuelve la mutación login. Credenciales inválidas devuelven
// siempre el mismo error, sin distinguir el factor fallido.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*authPayloadResolver, error) {
	user, err := r.userSvc.Authenticate(ctx, args.Email, args.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return nil, errInvalidCredentials
		case errors.Is(err, service.ErrRateLimited):
			return nil, errRateLimited
		default:
			r.logger.Error("login failed", zap.Error(err))
			return nil, errInternal
		}
	}

	token, err := r.jwtSvc.Issue(user.ID)
	if err != nil {
		r.logger.Error("token issue failed", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, errInternal
	}
	return &authPayloadResolver{token: token, user: user}, nil
}

type userResolver struct {
	user domain.User
}

func (r *userResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(strconv.FormatInt(r.user.ID, 10))
}

func (r *userResolver) Name() string {
	return r.user.Name
}

func (r *userResolver) Email() string {
	return r.user.Email
}

func (r *userResolver) CreatedAt() string {
	return r.user.CreatedAt.UTC().Format(time.RFC3339)
}

type authPayloadResolver struct {
	token string
	user  domain.User
}

func (r *authPayloadResolver) Token() string {
	return r.token
}

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{user: r.user}
}
