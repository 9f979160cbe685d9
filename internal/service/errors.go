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
	ErrParamInvalid         = errors.New("参数错误")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserBan              = errors.New("用户已被封禁")
	ErrUserEmailExist       = errors.New("邮箱已注册")
	ErrUserUsernameExist    = errors.New("用户名已存在")
	ErrPasswordIncorrect    = errors.New("密码错误")
	ErrPostNotFound         = errors.New("帖子不存在")
	ErrPostNotOwned         = errors.New("无权访问他人帖子")
	ErrPostPublished        = errors.New("已发布的帖子不可修改")
	ErrPostDeletePublished  = errors.New("已发布的帖子不可删除")
	ErrPlatformInvalid      = errors.New("平台类型无效")
	ErrPostStatusInvalid    = errors.New("帖子状态无效")
	ErrScheduleTimeRequired = errors.New("定时发布需指定发布时间")
	ErrDateRangeInvalid     = errors.New("日期区间无效")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrUserNotFound:         NotFound,
	ErrUserBan:              Unauthorized,
	ErrUserEmailExist:       BadRequest,
	ErrUserUsernameExist:    BadRequest,
	ErrPasswordIncorrect:    Unauthorized,
	ErrPostNotFound:         NotFound,
	ErrPostNotOwned:         NotFound,
	ErrPostPublished:        BadRequest,
	ErrPostDeletePublished:  BadRequest,
	ErrPlatformInvalid:      BadRequest,
	ErrPostStatusInvalid:    BadRequest,
	ErrScheduleTimeRequired: BadRequest,
	ErrDateRangeInvalid:     BadRequest,
	UnauthorizedError:       Forbidden,
	UnExpectedError:         InternalServerError,
}
