package tui

import (
	catUC "devblog/internal/usecase/category"
)

// navigateMsg asks the browser to show target, e.g. /category/go?page=2.
type navigateMsg struct {
	target string
}

type pageLoadedMsg struct {
	route  catUC.RouteParams
	loaded *catUC.Page
}

type pageErrMsg struct {
	route catUC.RouteParams
	err   error
}
