//go:build !unix

package display

func getCellSize() (cellW, cellH int) {
	return defaultCellW, defaultCellH
}
