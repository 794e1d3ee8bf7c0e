// Command token выпускает access-токен для локальной проверки приватных
// маршрутов.
package main

import (
	"flag"
	"fmt"
	"github.com/14kear/pollstore/internal/config"
	"github.com/14kear/pollstore/internal/lib/jwt"
	"log"
)

func main() {
	var (
		configPath string
		userID     int64
		email      string
	)

	flag.StringVar(&configPath, "config", "config/local.yaml", "path to config file")
	flag.Int64Var(&userID, "uid", 1, "user id to put into the token")
	flag.StringVar(&email, "email", "dev@localhost", "email to put into the token")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	token, err := jwt.NewAccessToken(userID, email, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(token)
}
