package repos

import (
	"pristine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, email, name, password_hash, role, email_confirmed, confirm_token`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id, email, name, password_hash, role, email_confirmed, confirm_token)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Name, u.Hash, u.Role, u.EmailConfirmed, u.ConfirmToken)
	return err
}

// ConfirmByToken marks the matching account confirmed and burns the token.
// Returns the confirmed user, or an error if no account matches.
func (r *UserRepo) ConfirmByToken(token string) (*domain.User, error) {
	var u domain.User
	if err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE confirm_token = ? AND confirm_token != ''`, token); err != nil {
		return nil, err
	}
	if _, err := r.DB.Exec(`
	  UPDATE users SET email_confirmed = 1, confirm_token = '', updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, u.ID); err != nil {
		return nil, err
	}
	u.EmailConfirmed = true
	u.ConfirmToken = ""
	return &u, nil
}

func (r *UserRepo) SetConfirmToken(userID, token string) error {
	_, err := r.DB.Exec(`
	  UPDATE users SET confirm_token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, token, userID)
	return err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.name,u.password_hash,u.role,u.email_confirmed,u.confirm_token
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
