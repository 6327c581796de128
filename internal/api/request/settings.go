package request

type SetSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
