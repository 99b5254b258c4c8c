package notify

// Offer puts v in the one slot channel out, replacing a value nobody read yet.
// Only valid when the caller is the single sender on out.
func Offer[T any](out chan T, v T) {
	for {
		select {
		case out <- v:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}
