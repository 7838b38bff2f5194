package service

import (
	"StreamHub/internal/data"
	"StreamHub/internal/event"
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/internal/storage"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 内存版的repository，测试不需要数据库和Redis

var idSeq int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&idSeq, 1))
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

// add 直接放一个用户进去，密码用最小cost加密
func (r *fakeUserRepo) add(username, password, role string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{Username: username, Password: string(hashed), Role: role}
	u.ID = nextID("user")
	r.mu.Lock()
	r.users[u.ID] = u
	r.mu.Unlock()
	return u
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateKey
		}
	}
	if user.ID == "" {
		user.ID = nextID("user")
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// fakeVideoRepo 同时持有评论和点赞，FindWithRelations时拼起来
type fakeVideoRepo struct {
	mu       sync.Mutex
	videos   map[string]*model.Video
	order    []string
	comments *fakeCommentRepo
	likes    *fakeLikeRepo

	cache       map[string]*model.Video
	dbReads     int64
	invalidated []string
	failCreate  error
}

func newFakeVideoRepo(comments *fakeCommentRepo, likes *fakeLikeRepo) *fakeVideoRepo {
	return &fakeVideoRepo{
		videos:   map[string]*model.Video{},
		comments: comments,
		likes:    likes,
		cache:    map[string]*model.Video{},
	}
}

func (r *fakeVideoRepo) add(title, uploader, status string, views int64) *model.Video {
	v := &model.Video{Title: title, Uploader: uploader, Status: status, Views: views, Duration: model.DefaultDuration}
	v.ID = nextID("video")
	r.mu.Lock()
	r.videos[v.ID] = v
	r.order = append(r.order, v.ID)
	r.mu.Unlock()
	return v
}

func (r *fakeVideoRepo) WithTx(*gorm.DB) repository.VideoRepository { return r }

func (r *fakeVideoRepo) Create(video *model.Video) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == "" {
		video.ID = nextID("video")
	}
	cp := *video
	r.videos[video.ID] = &cp
	r.order = append(r.order, video.ID)
	return nil
}

// FindAll 新的在前，和真实实现一致
func (r *fakeVideoRepo) FindAll(filter repository.VideoFilter) ([]model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Video
	for i := len(r.order) - 1; i >= 0; i-- {
		v, ok := r.videos[r.order[i]]
		if !ok {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.Uploader != "" && v.Uploader != filter.Uploader {
			continue
		}
		result = append(result, *v)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []model.Video{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeVideoRepo) FindByID(videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) FindWithRelations(videoID string) (*model.Video, error) {
	atomic.AddInt64(&r.dbReads, 1)
	// 模拟一次较慢的数据库查询，让并发请求有机会被合并
	time.Sleep(time.Millisecond)
	v, err := r.FindByID(videoID)
	if err != nil {
		return nil, err
	}
	v.Comments, _ = r.comments.FindByVideoID(videoID, 0, 0)
	v.Likes = r.likes.byVideo(videoID)
	return v, nil
}

func (r *fakeVideoRepo) FindByIDs(videoIDs []string) ([]model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Video
	for _, id := range videoIDs {
		if v, ok := r.videos[id]; ok {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *fakeVideoRepo) Update(video *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *video
	cp.Comments, cp.Likes = nil, nil
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) IncrementViews(videoID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[videoID]
	if !ok {
		return 0, nil
	}
	v.Views++
	return 1, nil
}

func (r *fakeVideoRepo) Delete(videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, videoID)
	return nil
}

func (r *fakeVideoRepo) GetVideoCache(videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[videoID], nil
}

func (r *fakeVideoRepo) SetVideoCache(video *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) DeleteVideoCache(videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, videoID)
	r.invalidated = append(r.invalidated, videoID)
	return nil
}

func (r *fakeVideoRepo) wasInvalidated(videoID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.invalidated {
		if id == videoID {
			return true
		}
	}
	return false
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []model.Comment
}

func (r *fakeCommentRepo) WithTx(*gorm.DB) repository.CommentRepository { return r }

func (r *fakeCommentRepo) Create(comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = nextID("comment")
	}
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) FindByID(commentID string) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == commentID {
			cp := c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// FindByVideoID 新的在前；limit为0时不分页
func (r *fakeCommentRepo) FindByVideoID(videoID string, offset, limit int) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Comment
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].VideoID == videoID {
			result = append(result, r.comments[i])
		}
	}
	if offset >= len(result) {
		return []model.Comment{}, nil
	}
	result = result[offset:]
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeCommentRepo) CountByVideoIDs(videoIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, id := range videoIDs {
		for _, c := range r.comments {
			if c.VideoID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *fakeCommentRepo) Delete(commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

func (r *fakeCommentRepo) DeleteByVideoID(videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.comments[:0]
	for _, c := range r.comments {
		if c.VideoID != videoID {
			kept = append(kept, c)
		}
	}
	r.comments = kept
	return nil
}

func (r *fakeCommentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.comments)
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes []model.Like
	// 非空时，下一次Create先把这条记录插进去再报重复，模拟并发插入
	raceWith *model.Like
}

func (r *fakeLikeRepo) WithTx(*gorm.DB) repository.LikeRepository { return r }

func (r *fakeLikeRepo) FindByVideoAndUser(videoID, username string) (*model.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.VideoID == videoID && l.Username == username {
			cp := l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) Create(like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceWith != nil {
		other := *r.raceWith
		other.ID = nextID("like")
		r.likes = append(r.likes, other)
		r.raceWith = nil
	}
	for _, l := range r.likes {
		if l.VideoID == like.VideoID && l.Username == like.Username {
			return repository.ErrDuplicateKey
		}
	}
	if like.ID == "" {
		like.ID = nextID("like")
	}
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakeLikeRepo) Update(like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.likes {
		if r.likes[i].ID == like.ID {
			r.likes[i].IsLike = like.IsLike
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeLikeRepo) CountByVideoIDs(videoIDs []string) (map[string]model.LikeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := map[string]model.LikeStats{}
	for _, id := range videoIDs {
		for _, l := range r.likes {
			if l.VideoID != id {
				continue
			}
			s := stats[id]
			if l.IsLike {
				s.Likes++
			} else {
				s.Dislikes++
			}
			stats[id] = s
		}
	}
	return stats, nil
}

func (r *fakeLikeRepo) DeleteByVideoID(videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.likes[:0]
	for _, l := range r.likes {
		if l.VideoID != videoID {
			kept = append(kept, l)
		}
	}
	r.likes = kept
	return nil
}

func (r *fakeLikeRepo) byVideo(videoID string) []model.Like {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Like
	for _, l := range r.likes {
		if l.VideoID == videoID {
			result = append(result, l)
		}
	}
	return result
}

func (r *fakeLikeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.likes)
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs []model.Subscription
}

func (r *fakeSubscriptionRepo) Create(sub *model.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.Subscriber == sub.Subscriber && s.Channel == sub.Channel {
			return repository.ErrDuplicateKey
		}
	}
	sub.ID = nextID("sub")
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *fakeSubscriptionRepo) Find(subscriber, channel string) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.Subscriber == subscriber && s.Channel == channel {
			cp := s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubscriptionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.subs[:0]
	for _, s := range r.subs {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.subs = kept
	return nil
}

func (r *fakeSubscriptionRepo) CountByChannel(channel string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.subs {
		if s.Channel == channel {
			n++
		}
	}
	return n, nil
}

type fakePlaylistRepo struct {
	mu        sync.Mutex
	playlists map[string]*model.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: map[string]*model.Playlist{}}
}

func (r *fakePlaylistRepo) Create(p *model.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = nextID("playlist")
	}
	cp := *p
	cp.VideoIDs = append([]string{}, p.VideoIDs...)
	r.playlists[p.ID] = &cp
	return nil
}

func (r *fakePlaylistRepo) FindByID(id string) (*model.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.playlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.VideoIDs = append([]string{}, p.VideoIDs...)
	return &cp, nil
}

func (r *fakePlaylistRepo) FindByOwner(username string) ([]model.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Playlist
	for _, p := range r.playlists {
		if p.Username == username {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakePlaylistRepo) Update(p *model.Playlist) error {
	return r.Create(p)
}

func (r *fakePlaylistRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playlists, id)
	return nil
}

// fakeUnitOfWork 不开事务，直接把内存repo交给fn
type fakeUnitOfWork struct {
	videos   *fakeVideoRepo
	comments *fakeCommentRepo
	likes    *fakeLikeRepo
}

func (u *fakeUnitOfWork) Execute(fn func(repos *data.TransactionalRepositories) error) error {
	return fn(&data.TransactionalRepositories{
		VideoRepo:   u.videos,
		CommentRepo: u.comments,
		LikeRepo:    u.likes,
	})
}

type fakeSigner struct {
	err     error
	lastKey string
	lastTTL time.Duration
}

func (s *fakeSigner) PresignUpload(_ context.Context, objectKey string, ttl time.Duration) (*storage.UploadURL, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastKey = objectKey
	s.lastTTL = ttl
	return &storage.UploadURL{
		URL:       "https://blob.example/raw/" + objectKey + "?sig=x",
		ObjectKey: objectKey,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

type fakePublisher struct {
	err  error
	sent []event.VideoUploadMessage
}

func (p *fakePublisher) PublishVideoUpload(msg event.VideoUploadMessage) error {
	p.sent = append(p.sent, msg)
	return p.err
}

var errBoom = errors.New("boom")

// fixture 把所有内存repo和service组装在一起
type fixture struct {
	users     *fakeUserRepo
	videos    *fakeVideoRepo
	comments  *fakeCommentRepo
	likes     *fakeLikeRepo
	subs      *fakeSubscriptionRepo
	playlists *fakePlaylistRepo
	uow       *fakeUnitOfWork
	signer    *fakeSigner
	publisher *fakePublisher
}

func newFixture() *fixture {
	comments := &fakeCommentRepo{}
	likes := &fakeLikeRepo{}
	videos := newFakeVideoRepo(comments, likes)
	return &fixture{
		users:     newFakeUserRepo(),
		videos:    videos,
		comments:  comments,
		likes:     likes,
		subs:      &fakeSubscriptionRepo{},
		playlists: newFakePlaylistRepo(),
		uow:       &fakeUnitOfWork{videos: videos, comments: comments, likes: likes},
		signer:    &fakeSigner{},
		publisher: &fakePublisher{},
	}
}

func (f *fixture) videoService() VideoService {
	return NewVideoService(f.videos, f.uow, f.signer, f.publisher, 0)
}

func (f *fixture) adminService() AdminService {
	s := NewAdminService(f.users, f.videos, f.comments, f.likes, f.uow).(*adminService)
	s.hashCost = bcrypt.MinCost
	return s
}

var (
	alice = Caller{UserID: "u-alice", Username: "alice", Role: model.RoleUser}
	bob   = Caller{UserID: "u-bob", Username: "bob", Role: model.RoleUser}
	root  = Caller{UserID: "u-admin", Username: "admin", Role: model.RoleAdmin}
)
