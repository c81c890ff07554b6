package swap

import (
	"swapkern/blk"
	"swapkern/mem"
)

/// WritePageToSlot copies frame's 4KiB image into slot's 8 disk blocks.
/// Each block is obtained, written, and released synchronously; there is
/// no ordering guarantee across the 8 writes beyond "all complete before
/// this call returns".
func WritePageToSlot(disk blk.Disk_i, slot int, frame *mem.Bytepg_t) {
	base := BlockBase(slot)
	for i := 0; i < BlocksPerSlot; i++ {
		b := blk.Bread(disk, base+i)
		off := i * blk.BSIZE
		copy(b.Data[:], frame[off:off+blk.BSIZE])
		blk.Bwrite(disk, b)
		blk.Brelse(b)
	}
}

/// ReadPageFromSlot is the symmetric read: it reconstructs frame's 4KiB
/// image from slot's 8 disk blocks.
func ReadPageFromSlot(disk blk.Disk_i, slot int, frame *mem.Bytepg_t) {
	base := BlockBase(slot)
	for i := 0; i < BlocksPerSlot; i++ {
		b := blk.Bread(disk, base+i)
		off := i * blk.BSIZE
		copy(frame[off:off+blk.BSIZE], b.Data[:])
		blk.Brelse(b)
	}
}

/// copySlotBlocks copies the 8 disk blocks belonging to src into dst,
/// without touching any physical frame — used by Duplicate to clone a
/// parent's swapped page for fork.
func copySlotBlocks(disk blk.Disk_i, src, dst int) {
	srcBase := BlockBase(src)
	dstBase := BlockBase(dst)
	for i := 0; i < BlocksPerSlot; i++ {
		b := blk.Bread(disk, srcBase+i)
		db := blk.Bread(disk, dstBase+i)
		db.Data = b.Data
		blk.Bwrite(disk, db)
		blk.Brelse(b)
		blk.Brelse(db)
	}
}
