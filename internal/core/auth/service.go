package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

const (
	defaultTokenTTL   = 24 * time.Hour
	maxUsernameLength = 50
	// bcrypt は 72 バイトを超える入力を扱えません。
	maxPasswordBytes = 72
)

// Config は認証サービスの設定です。
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Claims はセッショントークンに載せる情報です。
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Session は発行済みトークンとその所有者です。
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Service は資格情報の検証とセッション発行を行います。
type Service struct {
	repo       Repository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	clock      Clock
	dummyHash  []byte
}

// NewService は Service を生成します。
func NewService(repo Repository, cfg Config, clock Clock) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrMissingSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("auth: bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if clock == nil {
		clock = realClock{}
	}

	// 存在しないユーザーでも比較処理を行い、応答時間から存在を推測させないようにします。
	dummy, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: prepare password hasher: %w", err)
	}

	return &Service{
		repo:       repo,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
		clock:      clock,
		dummyHash:  dummy,
	}, nil
}

// VerifyCredentials はユーザー名とパスワードを検証します。
// ユーザーが存在しない場合もパスワード不一致と同じ ErrInvalidCredentials を返します。
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (*User, error) {
	name := strings.TrimSpace(username)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession は HS256 で署名したセッショントークンを発行します。
func (s *Service) IssueSession(user *User) (*Session, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("auth: sign token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login は資格情報を検証してセッションを発行します。
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(user)
}

// Register はユーザーを作成し、そのままログイン済みのセッションを返します。
func (s *Service) Register(ctx context.Context, username, password, role string) (*Session, error) {
	name := strings.TrimSpace(username)
	if name == "" || utf8.RuneCountInString(name) > maxUsernameLength {
		return nil, ErrInvalidUsername
	}
	if password == "" || len(password) > maxPasswordBytes {
		return nil, ErrInvalidPassword
	}

	parsedRole, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &User{
		Username:     name,
		PasswordHash: string(hash),
		Role:         parsedRole,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	return s.IssueSession(created)
}

// VerifySession はトークンの署名・アルゴリズム・有効期限を検証します。
func (s *Service) VerifySession(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if _, err := ParseRole(string(claims.Role)); err != nil || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
