package service

import (
	"StreamHub/internal/model"
	"StreamHub/pkg/apperr"
)

// Decision 是一次权限判断的结果，拒绝时带上原因
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err 拒绝时转成forbidden错误
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return apperr.Forbidden(d.Reason)
}

// 上传者本人或管理员可以删除视频
func CanDeleteVideo(caller Caller, video *model.Video) Decision {
	if caller.IsAdmin() || (caller.Username != "" && caller.Username == video.Uploader) {
		return allow()
	}
	return deny("您没有权限删除该视频")
}

// 评论作者本人或管理员可以删除评论
func CanDeleteComment(caller Caller, comment *model.Comment) Decision {
	if caller.IsAdmin() || (caller.Username != "" && caller.Username == comment.Username) {
		return allow()
	}
	return deny("您没有权限删除该评论")
}

// 播放列表只有所有者可以修改，管理员也不例外
func CanModifyPlaylist(caller Caller, playlist *model.Playlist) Decision {
	if caller.Username != "" && caller.Username == playlist.Username {
		return allow()
	}
	return deny("您没有权限修改该播放列表")
}

func CanAdminister(caller Caller) Decision {
	if caller.IsAdmin() {
		return allow()
	}
	return deny("只有管理员可以访问")
}

// 保留的admin账号永远不能删除
func CanDeleteUser(target *model.User) Decision {
	if target.IsReservedAdmin() {
		return deny("不能删除admin账号")
	}
	return allow()
}

// 保留的admin账号的角色只能是ADMIN
func CanChangeRole(target *model.User, role string) Decision {
	if target.IsReservedAdmin() && role != model.RoleAdmin {
		return deny("不能修改admin账号的角色")
	}
	return allow()
}
