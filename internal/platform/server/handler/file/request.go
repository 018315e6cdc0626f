package file

type CreateFileRequest struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type ResizeFileRequest struct {
	Size float64 `json:"size"`
}

type CreateFileResponse struct {
	Name   string `json:"name"`
	Blocks []int  `json:"blocks"`
}

type ResizeFileResponse struct {
	Name       string `json:"name"`
	BlockCount int    `json:"block_count"`
}

type DeleteFileResponse struct {
	Name  string `json:"name"`
	Freed int    `json:"freed"`
}
