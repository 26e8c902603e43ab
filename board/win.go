package board

// HasWon returns true if side has SeqToWin consecutive markers in a row, a
// column or either diagonal. Each direction is a run-length scan: the count
// resets on any cell that does not belong to side.
func HasWon(b *GameBoard, side Cell) bool {
	if side == Empty {
		return false
	}
	return hasHorizontal(b, side) || hasVertical(b, side) ||
		hasFallingDiagonal(b, side) || hasRisingDiagonal(b, side)
}

// Winner returns the side that has a winning run, or Empty. If both sides
// somehow have one, First is reported.
func Winner(b *GameBoard) Cell {
	if HasWon(b, First) {
		return First
	}
	if HasWon(b, Second) {
		return Second
	}
	return Empty
}

func hasHorizontal(b *GameBoard, side Cell) bool {
	for r := 0; r < NumRows; r++ {
		count := 0
		for c := 0; c < NumCols; c++ {
			if b.squares[r][c] != side {
				count = 0
				continue
			}
			count++
			if count >= SeqToWin {
				return true
			}
		}
	}
	return false
}

func hasVertical(b *GameBoard, side Cell) bool {
	for c := 0; c < NumCols; c++ {
		count := 0
		for r := 0; r < NumRows; r++ {
			if b.squares[r][c] != side {
				count = 0
				continue
			}
			count++
			if count >= SeqToWin {
				return true
			}
		}
	}
	return false
}

// hasFallingDiagonal scans windows going down and to the right. Windows only
// start where a full run still fits.
func hasFallingDiagonal(b *GameBoard, side Cell) bool {
	for startCol := 0; startCol <= NumCols-SeqToWin; startCol++ {
		for startRow := 0; startRow <= NumRows-SeqToWin; startRow++ {
			count := 0
			for i := 0; i < SeqToWin; i++ {
				if b.squares[startRow+i][startCol+i] != side {
					break
				}
				count++
			}
			if count >= SeqToWin {
				return true
			}
		}
	}
	return false
}

// hasRisingDiagonal scans windows going up and to the right. The row index
// decreases as the column increases, so the start row must leave room above
// it for the rest of the run.
func hasRisingDiagonal(b *GameBoard, side Cell) bool {
	for startCol := 0; startCol <= NumCols-SeqToWin; startCol++ {
		for startRow := SeqToWin - 1; startRow < NumRows; startRow++ {
			count := 0
			for i := 0; i < SeqToWin; i++ {
				if b.squares[startRow-i][startCol+i] != side {
					break
				}
				count++
			}
			if count >= SeqToWin {
				return true
			}
		}
	}
	return false
}
