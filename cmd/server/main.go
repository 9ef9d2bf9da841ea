package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/giftbox/internal/server"
	"github.com/dmitrijs2005/giftbox/internal/server/auth"
	"github.com/dmitrijs2005/giftbox/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// giftbox-server keygen <anon|service>
	if len(os.Args) > 2 && os.Args[1] == "keygen" {
		if err := keygen(cfg, os.Args[2]); err != nil {
			log.Fatalf("keygen: %v", err)
		}
		return
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}

func keygen(cfg *config.Config, roleName string) error {
	if cfg.SecretKey == "" {
		return fmt.Errorf("a secret key is required to issue API keys")
	}
	role, err := auth.ParseRole(roleName)
	if err != nil {
		return err
	}
	key, err := auth.GenerateAPIKey(role, []byte(cfg.SecretKey), 0)
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}
