package constants

// 订单状态常量
const (
	OrderStatusUnpaid     = "unpaid"     // 待支付（线上支付）
	OrderStatusUnsent     = "unsent"     // 待发货（货到付款）
	OrderStatusUnreceived = "unreceived" // 待收货
	OrderStatusUncomment  = "uncomment"  // 待评价
	OrderStatusFinished   = "finished"   // 已完成
	OrderStatusCanceled   = "canceled"   // 已取消
)

// 支付方式常量
const (
	PayMethodCash   = "cash"   // 货到付款
	PayMethodOnline = "online" // 在线支付
)

// 购物车常量
const (
	CartQuantityMin   = 1   // 单行最小数量
	CartQuantityMax   = 999 // 单行最大数量
	CartCookieName    = "cart"
	CartCookieMaxAge  = 3600 * 24 * 365 // 匿名购物车 Cookie 有效期（秒）
	CartCookieVersion = 1               // Cookie 载荷版本号
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault    = "default"
	TaskCartCleanup = "cart:cleanup"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "md"
)
