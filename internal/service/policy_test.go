package service

import (
	"StreamHub/internal/model"
	"testing"
)

func TestPolicies(t *testing.T) {
	video := &model.Video{Uploader: "alice"}
	comment := &model.Comment{Username: "bob"}
	playlist := &model.Playlist{Username: "alice"}
	reserved := &model.User{Username: model.ReservedAdminUsername, Role: model.RoleAdmin}
	regular := &model.User{Username: "alice", Role: model.RoleUser}
	anonymous := Caller{}

	cases := []struct {
		name string
		got  Decision
		want bool
	}{
		{"uploader deletes video", CanDeleteVideo(alice, video), true},
		{"admin deletes video", CanDeleteVideo(root, video), true},
		{"stranger deletes video", CanDeleteVideo(bob, video), false},
		{"anonymous deletes unowned video", CanDeleteVideo(anonymous, &model.Video{}), false},
		{"author deletes comment", CanDeleteComment(bob, comment), true},
		{"admin deletes comment", CanDeleteComment(root, comment), true},
		{"stranger deletes comment", CanDeleteComment(alice, comment), false},
		{"owner modifies playlist", CanModifyPlaylist(alice, playlist), true},
		{"admin modifies playlist", CanModifyPlaylist(root, playlist), false},
		{"admin administers", CanAdminister(root), true},
		{"user administers", CanAdminister(alice), false},
		{"delete reserved admin", CanDeleteUser(reserved), false},
		{"delete regular user", CanDeleteUser(regular), true},
		{"demote reserved admin", CanChangeRole(reserved, model.RoleUser), false},
		{"keep reserved admin", CanChangeRole(reserved, model.RoleAdmin), true},
		{"promote regular user", CanChangeRole(regular, model.RoleAdmin), true},
	}
	for _, c := range cases {
		if c.got.Allowed != c.want {
			t.Errorf("%s: allowed = %v, want %v", c.name, c.got.Allowed, c.want)
		}
		if !c.got.Allowed && c.got.Reason == "" {
			t.Errorf("%s: denied without a reason", c.name)
		}
		if (c.got.Err() == nil) != c.want {
			t.Errorf("%s: Err() = %v", c.name, c.got.Err())
		}
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, size          int
		wantOffset, wantLim int
	}{
		{0, 0, 0, 20},
		{1, 10, 0, 10},
		{3, 10, 20, 10},
		{-1, 500, 0, 100},
	}
	for _, c := range cases {
		offset, limit := normalizePage(c.page, c.size)
		if offset != c.wantOffset || limit != c.wantLim {
			t.Errorf("normalizePage(%d, %d) = %d, %d", c.page, c.size, offset, limit)
		}
	}
}

func TestDurationPattern(t *testing.T) {
	for _, ok := range []string{"00:00", "02:15", "1:05:30", "120:00"} {
		if !durationPattern.MatchString(ok) {
			t.Errorf("%q rejected", ok)
		}
	}
	for _, bad := range []string{"", "2:15:", "02:60", "ab:cd", "1:2"} {
		if durationPattern.MatchString(bad) {
			t.Errorf("%q accepted", bad)
		}
	}
}
