package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sunthewhat/olymp-cert-api/api"
	"github.com/sunthewhat/olymp-cert-api/common"
	"github.com/sunthewhat/olymp-cert-api/common/config"
	"github.com/sunthewhat/olymp-cert-api/common/gorm"
	"github.com/sunthewhat/olymp-cert-api/common/mongo"
	"github.com/sunthewhat/olymp-cert-api/common/util"
)

func main() {
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isPullDB := flag.Bool("PullDB", false, "Run database pulling")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	adminToken := flag.String("AdminToken", "", "Print an admin bearer token for the given subject and exit")
	flag.Parse()
	config.LoadConfig()

	if *adminToken != "" {
		token, err := util.GenerateAdminToken(*common.Config.JWTSecret, *adminToken, util.AdminTokenTTL)
		if err != nil {
			slog.Error("Failed to generate admin token", "error", err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	if *isPushDB || *isPullDB {
		if *isPullDB {
			gorm.Pull_db()
		}
		if *isPushDB {
			gorm.Push_db()
		}
		if !*isRunAfter {
			return
		}
	}

	gorm.InitGorm()
	mongo.InitMongo()
	if err := util.InitMinIO(); err != nil {
		slog.Error("Failed to initialize MinIO", "error", err)
		os.Exit(1)
	}
	util.InitDialer()
	api.InitFiber()
}
