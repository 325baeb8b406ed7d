package main

import (
	"os"

	"github.com/rnr-capital/microblog-backend/imagestore"
	"github.com/rnr-capital/microblog-backend/server"
	"github.com/rnr-capital/microblog-backend/utils"
	"github.com/rnr-capital/microblog-backend/utils/dotenv"
	. "github.com/rnr-capital/microblog-backend/utils/flag"
	. "github.com/rnr-capital/microblog-backend/utils/log"
)

func cleanup() {
	LogV2.Info("microblog server shutdown")
}

func main() {
	ParseFlags()
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	var cache utils.PageCache
	if os.Getenv("REDIS_ADDR") != "" {
		redisCache, err := utils.GetRedisPageCache()
		if err != nil {
			panic("failed to connect to redis: " + err.Error())
		}
		cache = redisCache
	} else {
		cache = utils.NewMemoryPageCache(nil)
	}

	var store imagestore.ImageStore = imagestore.NullImageStore{}
	if bucket := os.Getenv("S3_IMAGE_BUCKET"); bucket != "" {
		urlPrefix := os.Getenv("IMAGE_URL_PREFIX")
		if urlPrefix == "" {
			urlPrefix = imagestore.DefaultUrlPrefix
		}
		s3Store, err := imagestore.NewS3ImageStore(bucket, urlPrefix)
		if err != nil {
			panic("failed to create image store: " + err.Error())
		}
		store = s3Store
	}

	router := server.NewRouter(db, cache, store, utils.HomeCacheTTL())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	LogV2.Info("microblog server starts up")
	router.Run(":" + port)
}
