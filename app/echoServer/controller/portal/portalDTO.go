package portal

type LoginReq struct {
	Phone string `json:"phone" validate:"required"`
}

type SelectAccessoriesReq struct {
	AccessoryIDs []int64 `json:"accessory_ids"`
}
