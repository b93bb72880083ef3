package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUsernameInvalid     = errors.New("用户名只能包含字母、数字、下划线和连字符")
	ErrUsernameLength      = errors.New("用户名长度需在3到20个字符之间")
	ErrUsernameExist       = errors.New("用户名已被占用")
	ErrBioTooLong          = errors.New("个人简介不能超过300个字符")
	ErrPostNotFound        = errors.New("文章不存在")
	ErrPostNotPublished    = errors.New("文章未发布")
	ErrNotPostAuthor       = errors.New("只有作者才能操作这篇文章")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrCommentEmpty        = errors.New("评论内容不能为空")
	ErrCommentTooLong      = errors.New("评论内容不能超过1000个字符")
	ErrCommentNoPermission = errors.New("没有权限删除这条评论")
	ErrFollowSelf          = errors.New("不能关注自己")
	ErrTagsTooMany         = errors.New("标签数量超过限制")
	UnauthorizedError      = errors.New("权限不足")
	UnauthenticatedError   = errors.New("未登录")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUserNotFound:        NotFound,
	ErrUsernameInvalid:     BadRequest,
	ErrUsernameLength:      BadRequest,
	ErrUsernameExist:       BadRequest,
	ErrBioTooLong:          BadRequest,
	ErrPostNotFound:        NotFound,
	ErrPostNotPublished:    BadRequest,
	ErrNotPostAuthor:       Forbidden,
	ErrCommentNotFound:     NotFound,
	ErrCommentEmpty:        BadRequest,
	ErrCommentTooLong:      BadRequest,
	ErrCommentNoPermission: Forbidden,
	ErrFollowSelf:          BadRequest,
	ErrTagsTooMany:         BadRequest,
	UnauthorizedError:      Forbidden,
	UnauthenticatedError:   Unauthorized,
	UnExpectedError:        InternalServerError,
}
