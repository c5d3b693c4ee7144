package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// Requêtes utilisateur fréquentes. gocql met la préparation en cache côté
// session ; chaque getter construit une Query neuve, un objet partagé serait
// muté par Bind entre requêtes concurrentes.
const (
	stmtGetUserIDByEmail  = "SELECT user_id FROM users_by_email WHERE email = ?"
	stmtInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"
)

// userQuerier est satisfait par *gocql.Session ; injectable dans les tests.
type userQuerier interface {
	Query(stmt string, values ...interface{}) *gocql.Query
}

var (
	usersQuerier userQuerier
	preparedOnce sync.Once
)

// InitPreparedStatements fixe la session servant les requêtes utilisateur
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}
		usersQuerier = session
		log.Println("✅ Prepared statements initialisés")
	})
}

// GetPreparedGetUserIDByEmail : lookup user_id par email (table d'index,
// l'email est la clé de partition)
func GetPreparedGetUserIDByEmail() *gocql.Query {
	return usersQuerier.Query(stmtGetUserIDByEmail)
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return usersQuerier.Query(stmtInsertUserByEmail)
}
