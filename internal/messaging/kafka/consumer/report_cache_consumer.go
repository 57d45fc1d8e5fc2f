package consumer

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-attendance/internal/events"
	"go-attendance/internal/report"
)

// ConsumeAttendanceRangeProcessed drops cached report tables whenever a range
// is reprocessed. Reports are rebuilt lazily on the next request.
func ConsumeAttendanceRangeProcessed(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_range")
	log.Info("attendance range consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance range consumer stopped")
				return
			}
			log.Error("fetch attendance range message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceRangeProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance range event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := report.InvalidateCache(ctx, rdb); err != nil {
			log.Error("invalidate report cache failed",
				zap.String("start_date", event.StartDate),
				zap.String("end_date", event.EndDate),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance range message failed", zap.Error(err))
			continue
		}

		log.Info("report cache invalidated",
			zap.String("start_date", event.StartDate),
			zap.String("end_date", event.EndDate),
			zap.Int("processed_count", event.ProcessedCount),
		)
	}
}
