package authenticating

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/diana0617/beauty-control-api/infrastructure/repository"
	"github.com/diana0617/beauty-control-api/internal/config"
	"github.com/diana0617/beauty-control-api/internal/domain"
	"github.com/diana0617/beauty-control-api/pkg/apiErrors"
	"github.com/diana0617/beauty-control-api/pkg/cache"
	"github.com/diana0617/beauty-control-api/pkg/log"
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

type Authenticator interface {
	CreateUser(ctx context.Context, claims *domain.Claims, user *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, claims *domain.Claims, user *domain.UpdateUserRequest) error
	ListUser(ctx context.Context, claims *domain.Claims) ([]*domain.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	GenerateStrongPassword(ctx context.Context, claims *domain.Claims, targetUserID int) (string, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	ValidatePasswordStrength(password string) error
}

type Service struct {
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	cache        cache.Cache
	cfg          *config.Config
	now          func() time.Time
}

func NewService(userRepo repository.UserRepository, businessRepo repository.BusinessRepository, cacheStore cache.Cache, cfg *config.Config) Authenticator {
	return &Service{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		cache:        cacheStore,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *Service) UpdateUser(ctx context.Context, claims *domain.Claims, user *domain.UpdateUserRequest) error {
	if user.ID == 0 {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "ID é obrigatório")
	}

	userDatabase, err := s.userRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		return databaseError(err, "Erro ao consultar usuário")
	}
	if userDatabase == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, user.ID, fmt.Sprintf("Usuário %d não encontrado", user.ID))
	}

	if !canManage(claims, userDatabase) {
		return NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, user.ID, "Usuário pertence a outro negócio")
	}

	// Perfil, ativação e exclusão só por quem administra o usuário, nunca por ele mesmo
	accessChanged := user.RoleID != nil || user.Active != nil || user.Deleted != nil
	if accessChanged && !canAdminister(claims, userDatabase) {
		return NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, user.ID, "Sem permissão para alterar perfil ou situação do usuário")
	}

	if user.Name != nil {
		userDatabase.Name = *user.Name
	}

	if user.Lastname != nil {
		userDatabase.Lastname = *user.Lastname
	}

	if user.Email != nil {
		email := handleEmail(*user.Email)
		if email != userDatabase.Email {
			existing, err := s.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				return databaseError(err, "Erro ao consultar email")
			}
			if existing != nil {
				return NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
			}
		}
		userDatabase.Email = email
	}

	if user.Phone != nil {
		userDatabase.Phone = user.Phone
	}

	if user.Active != nil {
		userDatabase.Active = *user.Active
	}

	if user.RoleID != nil {
		if err := validateRole(claims, *user.RoleID); err != nil {
			return err
		}
		userDatabase.RoleID = *user.RoleID
	}

	if user.AvatarURL != nil {
		userDatabase.AvatarURL = user.AvatarURL
	}

	if user.Deleted != nil {
		now := s.now()
		userDatabase.Deleted = *user.Deleted
		userDatabase.DeletedAt = &now
	}

	if err := s.userRepo.UpdateUser(ctx, userDatabase); err != nil {
		return databaseError(err, "Erro ao atualizar usuário")
	}

	if accessChanged {
		s.invalidatePermissions(ctx, userDatabase)
	}

	return nil
}

func (s *Service) invalidatePermissions(ctx context.Context, user *domain.User) {
	if s.cache == nil || user.BusinessID == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PermissionsKey(*user.BusinessID, user.ID)); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao invalidar cache de permissões")
	}
}

func (s *Service) CreateUser(ctx context.Context, claims *domain.Claims, user *domain.User) (*domain.User, error) {
	if user.Email == "" || user.Name == "" || user.Lastname == "" || user.PasswordHash == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email, nome, sobrenome e senha são obrigatórios")
	}

	if user.RoleID == 0 {
		user.RoleID = domain.RoleSpecialist
	}

	if err := validateRole(claims, user.RoleID); err != nil {
		return nil, err
	}

	// Fora do OWNER o usuário sempre nasce no negócio de quem o cria
	if !claims.IsOwner() {
		businessID := claims.UserBusinessID
		user.BusinessID = &businessID
	}

	if user.RoleID != domain.RoleOwner && (user.BusinessID == nil || *user.BusinessID == "") {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Negócio é obrigatório para este perfil")
	}

	if err := s.ValidatePasswordStrength(user.PasswordHash); err != nil {
		return nil, err
	}

	user.Email = handleEmail(user.Email)

	userDatabase, err := s.userRepo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, databaseError(err, "Erro ao consultar email")
	}
	if userDatabase != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar hash da senha")
	}

	user.PasswordHash = string(hashedPassword)
	user.Active = true

	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicated) {
			return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Email já cadastrado")
		}
		return nil, databaseError(err, "Erro ao criar usuário")
	}

	log.ForContext(ctx).WithField("created_user_id", user.ID).Info("Usuário criado")

	user.PasswordHash = ""
	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

// canManage indica se quem fez a requisição pode alterar o usuário alvo
func canManage(claims *domain.Claims, target *domain.User) bool {
	if claims.IsOwner() {
		return true
	}
	if claims.UserID == target.ID {
		return true
	}
	if claims.UserRoleID != domain.RoleBusiness || target.BusinessID == nil {
		return false
	}
	return claims.CanAccessBusiness(*target.BusinessID)
}

// canAdminister restringe perfil e situação ao OWNER ou ao BUSINESS do mesmo negócio agindo sobre outro usuário
func canAdminister(claims *domain.Claims, target *domain.User) bool {
	if claims.IsOwner() {
		return true
	}
	if claims.UserID == target.ID || claims.UserRoleID != domain.RoleBusiness || target.BusinessID == nil {
		return false
	}
	return claims.CanAccessBusiness(*target.BusinessID)
}

func validateRole(claims *domain.Claims, roleID int) error {
	if !domain.IsValidRole(roleID) {
		return NewAuthError(ErrInvalidFormat, apiErrors.ErrInvalidFormat, fmt.Sprintf("Perfil %d inexistente", roleID))
	}
	if roleID == domain.RoleOwner && !claims.IsOwner() {
		return NewUserAuthError(ErrInsufficientPrivilege, apiErrors.ErrInsufficientPrivilege, claims.UserID, "Apenas o OWNER pode criar outro OWNER")
	}
	return nil
}

func (s *Service) ListUser(ctx context.Context, claims *domain.Claims) ([]*domain.User, error) {
	var businessID *string
	if !claims.IsOwner() {
		id := claims.UserBusinessID
		businessID = &id
	}

	users, err := s.userRepo.ListUser(ctx, businessID)
	if err != nil {
		return nil, databaseError(err, "Erro ao listar usuários")
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	// Validação de entrada
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", databaseError(err, "Erro ao consultar usuário no banco de dados")
	}

	// Verificar se o usuário existe
	if user == nil || user.Deleted {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Email ou senha inválidos")
	}

	// Verificar se o usuário está ativo
	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	// Verificar senha
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Email ou senha inválidos")
	}

	if user.RoleID != domain.RoleOwner && user.BusinessID != nil {
		business, err := s.businessRepo.GetByID(ctx, *user.BusinessID)
		if err != nil {
			return "", databaseError(err, "Erro ao consultar negócio do usuário")
		}
		if business == nil || !business.Status.IsOperational() {
			return "", NewUserAuthError(ErrBusinessInactive, apiErrors.ErrBusinessInactive, user.ID, "O negócio está suspenso ou inativo")
		}
	}

	// Gerar token JWT
	token, err := s.generateJWT(user)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	log.ForContext(ctx).WithField("user_id", user.ID).Info("Login realizado")

	return token, nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar perfil")
		return nil, databaseError(err, "Erro ao buscar perfil")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	businessID := ""
	if user.BusinessID != nil {
		businessID = *user.BusinessID
	}

	now := s.now()
	claims := domain.Claims{
		UserID:         user.ID,
		UserName:       user.Name,
		UserLastname:   user.Lastname,
		UserEmail:      user.Email,
		UserActive:     user.Active,
		UserRoleID:     user.RoleID,
		UserBusinessID: businessID,
		UserAvatarURL:  user.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SecretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
}

// GenerateStrongPassword gera uma senha forte para o usuário alvo.
// Apenas o OWNER ou o administrador do mesmo negócio podem gerar novas senhas.
func (s *Service) GenerateStrongPassword(ctx context.Context, claims *domain.Claims, targetUserID int) (string, error) {
	if claims.UserRoleID != domain.RoleOwner && claims.UserRoleID != domain.RoleBusiness {
		return "", NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, claims.UserID, "Apenas administradores podem gerar novas senhas")
	}

	targetUser, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return "", databaseError(err, "Erro ao consultar usuário alvo")
	}
	if targetUser == nil {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, targetUserID, "Usuário alvo não encontrado")
	}

	if !canManage(claims, targetUser) {
		return "", NewUserAuthError(ErrNoAdminPrivileges, apiErrors.ErrInsufficientPrivilege, claims.UserID, "Usuário alvo pertence a outro negócio")
	}

	newPassword, err := generateStrongPassword(12)
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar senha")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "erro ao gerar hash da senha")
	}

	if err := s.userRepo.UpdatePassword(ctx, targetUser.ID, string(hashedPassword)); err != nil {
		return "", databaseError(err, "Erro ao atualizar senha")
	}

	log.ForContext(ctx).WithField("target_user_id", targetUserID).Info("Nova senha gerada")

	return newPassword, nil
}

// generateStrongPassword gera uma senha forte com o comprimento especificado
// incluindo letras maiúsculas, minúsculas, números e caracteres especiais
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	allChars := lowerChars + upperChars + numberChars + specialChars
	password := make([]byte, length)

	// Garantir que a senha tenha pelo menos um caractere de cada tipo
	for i, charset := range []string{lowerChars, upperChars, numberChars, specialChars} {
		randomChar, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	for i := 4; i < length; i++ {
		randomChar, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	// Embaralhar a senha para que os caracteres não fiquem em ordem previsível
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

// getRandomChar retorna um caractere aleatório do conjunto fornecido
func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// ValidatePasswordStrength verifica se a senha atende aos requisitos de segurança
// Senha deve conter pelo menos 8 caracteres, incluindo maiúsculas, minúsculas, números e caracteres especiais
func (s *Service) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "A senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "A senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "A senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "A senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, "A senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword permite que um usuário altere sua própria senha
// Verifica se a senha atual está correta e se a nova senha atende aos requisitos de segurança
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return databaseError(err, "Erro ao consultar usuário")
	}
	if user == nil {
		return NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return NewUserAuthError(ErrPasswordMismatch, apiErrors.ErrInvalidCredentials, userID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewUserAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, userID, "A nova senha deve ser diferente da atual")
	}

	if err := s.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "erro ao gerar hash da senha")
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return databaseError(err, "Erro ao atualizar senha")
	}

	return nil
}
