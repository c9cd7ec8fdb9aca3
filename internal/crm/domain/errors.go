package domain

import "errors"

// 业务校验错误直接携带对外返回的文案，由接口层转换为 ok=false 结果；
// 未列入校验类的错误一律按意外错误向上传递。
var (
	ErrEmailExists        = errors.New("Email already exists.")
	ErrCustomerNotFound   = errors.New("Customer not found")
	ErrPriceNotPositive   = errors.New("Price must be positive.")
	ErrNegativeStock      = errors.New("Stock cannot be negative.")
	ErrNoProductsSelected = errors.New("At least one product must be selected.")
	ErrInvalidCustomerID  = errors.New("Invalid customer ID.")
	ErrInvalidProductIDs  = errors.New("One or more product IDs are invalid.")
)

// 内部未找到错误，查询侧将其映射为空结果而非异常
var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
)

var validationErrors = []error{
	ErrEmailExists,
	ErrCustomerNotFound,
	ErrPriceNotPositive,
	ErrNegativeStock,
	ErrNoProductsSelected,
	ErrInvalidCustomerID,
	ErrInvalidProductIDs,
}

// IsValidation 判断是否为业务校验错误
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
