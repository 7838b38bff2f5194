// cmd/seeder/main.go

package main

import (
	"StreamHub/internal/config"
	"StreamHub/internal/database"
	"StreamHub/internal/model"
	"fmt"
	"log"
	"math/rand"
	"slices"
	"strings"

	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount         = 50
	videoCount        = 200
	commentCount      = 600
	likeCount         = 1000
	subscriptionCount = 300
	defaultPassword   = "password"
)

var statuses = []string{model.StatusPending, model.StatusProcessing, model.StatusReady, model.StatusFailed}

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 清理旧数据：注意，这将删除所有数据！ ---
	fmt.Println("🧹 正在清理旧数据...")
	tables := slices.Clone(database.Models)
	slices.Reverse(tables) // 先删子表
	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Fatalf("❌ 删除旧表失败: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	// 所有用户共用一个密码，只加密一次
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}

	usernames := seedUsers(db, string(hashed), cfg.AdminPassword)
	videoIDs := seedVideos(db, usernames)
	seedComments(db, usernames, videoIDs)
	seedLikes(db, usernames, videoIDs)
	seedSubscriptions(db, usernames)
	seedPlaylists(db, usernames, videoIDs)

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}

func seedUsers(db *gorm.DB, hashed, adminPassword string) []string {
	fmt.Println("👥 正在创建用户...")
	adminHash := hashed
	if adminPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("❌ 密码加密失败: %v", err)
		}
		adminHash = string(h)
	}
	admin := model.User{Username: model.ReservedAdminUsername, Password: adminHash, Role: model.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("❌ 创建admin失败: %v", err)
	}

	usernames := make([]string, 0, userCount)
	for i := 0; i < userCount; i++ {
		// faker生成的名字可能重复，拼上序号；只保留字母，满足用户名规则
		username := fmt.Sprintf("%s_%d", strings.ToLower(onlyLetters(faker.FirstName())), i)
		user := model.User{Username: username, Password: hashed, Role: model.RoleUser}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ 创建用户失败: %v", err)
		}
		usernames = append(usernames, username)
	}
	fmt.Printf("✅ 成功创建 %d 个用户（密码均为 %q）以及admin账号!\n", userCount, defaultPassword)
	return usernames
}

func seedVideos(db *gorm.DB, usernames []string) []string {
	fmt.Println("🎬 正在创建视频...")
	ids := make([]string, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		status := statuses[rand.Intn(len(statuses))]
		video := model.Video{
			Title:    faker.Sentence(), // 生成一个随机的句子作为标题
			Status:   status,
			Uploader: usernames[rand.Intn(len(usernames))],
			Duration: fmt.Sprintf("%02d:%02d", rand.Intn(60), rand.Intn(60)),
		}
		if status == model.StatusReady {
			video.Views = int64(rand.Intn(10000))
		}
		if err := db.Create(&video).Error; err != nil {
			log.Fatalf("❌ 创建视频失败: %v", err)
		}
		// 只有READY的视频有播放地址
		if status == model.StatusReady {
			url := fmt.Sprintf("https://cdn.example.com/hls/%s/index.m3u8", video.ID)
			db.Model(&video).Update("streaming_url", url)
		}
		ids = append(ids, video.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)
	return ids
}

func seedComments(db *gorm.DB, usernames, videoIDs []string) {
	fmt.Println("💬 正在创建评论...")
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID:  videoIDs[rand.Intn(len(videoIDs))],
			Username: usernames[rand.Intn(len(usernames))],
			Content:  faker.Paragraph(),
		}
		db.Create(&comment)
	}
	fmt.Printf("✅ 成功创建 %d 条评论!\n", commentCount)
}

func seedLikes(db *gorm.DB, usernames, videoIDs []string) {
	fmt.Println("👍 正在创建随机点赞...")
	for i := 0; i < likeCount; i++ {
		like := model.Like{
			VideoID:  videoIDs[rand.Intn(len(videoIDs))],
			Username: usernames[rand.Intn(len(usernames))],
			IsLike:   rand.Intn(4) != 0, // 大约四分之一是踩
		}
		// 使用GORM的 OnConflict 来避免因为重复点赞而报错
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "username"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)
}

func seedSubscriptions(db *gorm.DB, usernames []string) {
	fmt.Println("🔔 正在创建关注关系...")
	for i := 0; i < subscriptionCount; i++ {
		subscriber := usernames[rand.Intn(len(usernames))]
		channel := usernames[rand.Intn(len(usernames))]
		if subscriber == channel {
			continue
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber"}, {Name: "channel"}},
			DoNothing: true,
		}).Create(&model.Subscription{Subscriber: subscriber, Channel: channel})
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个关注关系!\n", subscriptionCount)
}

func seedPlaylists(db *gorm.DB, usernames, videoIDs []string) {
	fmt.Println("📂 正在创建播放列表...")
	created := 0
	for _, username := range usernames {
		if rand.Intn(2) == 0 {
			continue
		}
		ids := make([]string, 0, 5)
		for len(ids) < 1+rand.Intn(5) {
			id := videoIDs[rand.Intn(len(videoIDs))]
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
		playlist := model.Playlist{Name: faker.Word() + " 合集", Username: username, VideoIDs: ids}
		db.Create(&playlist)
		created++
	}
	fmt.Printf("✅ 成功创建 %d 个播放列表!\n", created)
}

func onlyLetters(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
}
