package app

import (
	"database/sql"

	"github.com/Aayush4518/WhisperBox-SQL/config"
)

type App struct {
	*sql.DB
	config.Config
}
