package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "busops/internal/config"
	"busops/internal/domain/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/users
func GetUsers(c *gin.Context) {
	rows, err := intconfig.DB.Query(`
		SELECT id, name, username, email, COALESCE(phone,''), role, status
		FROM users
		ORDER BY id DESC
	`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal mengambil data user: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal scan data user: " + err.Error()})
			return
		}
		list = append(list, u)
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var u models.User
	err := intconfig.DB.QueryRow(`
		SELECT id, name, username, email, COALESCE(phone,''), role, status
		FROM users
		WHERE id = ?
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal query user: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

type userPayload struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password wajib diisi"})
		return
	}
	if req.Role == "" {
		req.Role = "user"
	}
	if req.Status == "" {
		req.Status = "active"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
		return
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, req.Name, req.Username, req.Email, req.Phone, string(hash), req.Role, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan user: " + err.Error()})
		return
	}
	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "user dibuat"})
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	var req userPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	sets := []string{"name=?", "username=?", "email=?", "phone=?", "updated_at=NOW()"}
	args := []any{req.Name, req.Username, req.Email, req.Phone}
	if req.Role != "" {
		sets = append(sets, "role=?")
		args = append(args, req.Role)
	}
	if req.Status != "" {
		sets = append(sets, "status=?")
		args = append(args, req.Status)
	}
	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
			return
		}
		sets = append(sets, "password_hash=?")
		args = append(args, string(hash))
	}
	args = append(args, id)

	res, err := intconfig.DB.Exec(`UPDATE users SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal update user: " + err.Error()})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user diperbarui"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menghapus user: " + err.Error()})
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user dihapus"})
}
