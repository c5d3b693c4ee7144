package database

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuerier struct {
	stmts []string
}

func (r *recordingQuerier) Query(stmt string, _ ...interface{}) *gocql.Query {
	r.stmts = append(r.stmts, stmt)
	return nil
}

func TestPreparedGettersBuildFreshQueries(t *testing.T) {
	rec := &recordingQuerier{}
	old := usersQuerier
	usersQuerier = rec
	defer func() { usersQuerier = old }()

	GetPreparedGetUserIDByEmail()
	GetPreparedGetUserIDByEmail()
	GetPreparedInsertUserByEmail()

	// une Query par appel : rien de partagé que Bind pourrait muter
	require.Len(t, rec.stmts, 3)
	assert.Equal(t, stmtGetUserIDByEmail, rec.stmts[0])
	assert.Equal(t, stmtGetUserIDByEmail, rec.stmts[1])
	assert.Equal(t, stmtInsertUserByEmail, rec.stmts[2])
}
