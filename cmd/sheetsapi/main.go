package main

import (
	"github.com/elijahthis/extract-api/cmd"
	"github.com/elijahthis/extract-api/internal/shared"
)

func main() {
	shared.InitLogger("sheetsapi")

	cmd.ExecuteSheetsAPI()
}
