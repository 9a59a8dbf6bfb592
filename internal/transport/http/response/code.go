package response

// 对外错误文案与原服务逐字一致，客户端有断言
const (
	MsgNoToken            = "No token provided"
	MsgInvalidToken       = "Invalid token"
	MsgAdminRequired      = "Admin access required"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserExists         = "User already exists"
	MsgSweetNotFound      = "Sweet not found"
	MsgOutOfStock         = "Out of stock"
	MsgInvalidQuantity    = "Invalid quantity"
	MsgSweetDeleted       = "Sweet deleted"
	MsgInternal           = "Internal Server Error"
)
