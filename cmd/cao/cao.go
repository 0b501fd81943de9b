package main

import (
	dnscli "github.com/Qinka/cao/src"
)

var _version_ string

func main() {
	if _version_ != "" {
		dnscli.Version = _version_
	}
	dnscli.Execute()
}
