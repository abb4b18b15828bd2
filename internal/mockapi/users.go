package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/karanch577/sneakerx-admin/pkg/jwtutil"
	"github.com/karanch577/sneakerx-admin/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrUserExists is returned when an email is already registered
var ErrUserExists = errors.New("User already exists")

// AddAccount registers a user with a bcrypt-hashed password
func (s *Store) AddAccount(name, email, password, role string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findAccountByEmail(email); ok {
		return model.User{}, ErrUserExists
	}
	a := account{
		User: model.User{
			ID:         newID(),
			Name:       name,
			Email:      strings.ToLower(email),
			Role:       role,
			Timestamps: s.stamp(),
		},
		passwordHash: hash,
	}
	s.accounts = append(s.accounts, a)
	return a.User, nil
}

func (s *Server) SignIn(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse sign-in request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}

	s.store.mu.RLock()
	a, ok := s.store.findAccountByEmail(req.Email)
	s.store.mu.RUnlock()
	if !ok {
		log.Warn("Sign-in for unknown email", zap.String("email", req.Email))
		return fail(c, http.StatusBadRequest, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		return fail(c, http.StatusBadRequest, "Invalid email or password")
	}

	if err := s.startSession(c, a.User); err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "token error")
	}

	log.Info("User signed in", zap.String("user_id", a.ID), zap.String("role", a.Role))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged in successfully", "user": a.User})
}

func (s *Server) SignUp(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.SignUp
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse sign-up request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	role := "USER"
	if req.IsAdmin {
		role = model.RoleAdmin
	}
	user, err := s.store.AddAccount(req.Name, req.Email, req.Password, role)
	if errors.Is(err, ErrUserExists) {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		log.Error("Failed to create account", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Failed to create account")
	}

	log.Info("User signed up", zap.String("user_id", user.ID), zap.String("role", role))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Signed up successfully", "user": user})
}

func (s *Server) SignOut(c echo.Context) error {
	clearSession(c)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Logged out successfully"})
}

func (s *Server) Profile(c echo.Context) error {
	claims := c.Get(claimsKey).(*jwtutil.SessionClaims)

	s.store.mu.RLock()
	i := indexOf(s.store.accounts, claims.UserID, accountID)
	var user model.User
	if i >= 0 {
		user = s.store.accounts[i].User
	}
	s.store.mu.RUnlock()

	if i < 0 {
		return fail(c, http.StatusUnauthorized, "Please login to access this resource")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

func (s *Server) ListRoles(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "roles": Roles})
}

func (s *Server) ListUsers(c echo.Context) error {
	page, limit := pageParams(c)

	s.store.mu.RLock()
	users, total := paginate(s.store.users(), page, limit)
	s.store.mu.RUnlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "users": users, "currentPage": page, "totalPage": total})
}

func (s *Server) CreateUser(c echo.Context) error {
	log := logger.FromEcho(c)

	var req model.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.ValidateCreate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	user, err := s.store.AddAccount(req.Name, req.Email, req.Password, req.Role)
	if errors.Is(err, ErrUserExists) {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		log.Error("Failed to create user", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "Failed to create user")
	}

	log.Info("User created", zap.String("user_id", user.ID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "User created", "user": user})
}

func (s *Server) UpdateUser(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req model.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request")
	}
	if err := req.ValidateUpdate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	var hash []byte
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return fail(c, http.StatusInternalServerError, "Failed to update user")
		}
		hash = h
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.accounts, id, accountID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "User not found")
	}
	if other, ok := s.store.findAccountByEmail(req.Email); ok && other.ID != id {
		return fail(c, http.StatusBadRequest, ErrUserExists.Error())
	}

	a := &s.store.accounts[i]
	a.Name = req.Name
	a.Email = strings.ToLower(req.Email)
	a.Role = req.Role
	if hash != nil {
		a.passwordHash = hash
	}
	s.store.touch(&a.Timestamps)

	log.Info("User updated", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": a.User})
}

func (s *Server) DeleteUser(c echo.Context) error {
	id := c.Param("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := indexOf(s.store.accounts, id, accountID)
	if i < 0 {
		return fail(c, http.StatusNotFound, "User not found")
	}
	s.store.accounts = remove(s.store.accounts, i)

	logger.FromEcho(c).Info("User deleted", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "User deleted successfully"})
}

func (s *Server) startSession(c echo.Context, user model.User) error {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return err
	}
	s.setSession(c, token)
	return nil
}
