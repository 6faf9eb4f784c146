package notebook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/timewave-computer/ufo-benchviz/style"
)

// A section pairs a markdown heading with the code cell that follows it.
type section struct {
	heading string
	code    string
}

// comparativeSections are the per-metric snippets emitted when the table
// carries configuration columns.
var comparativeSections = []section{
	{tpsComparisonText, tpsComparisonCode},
	{latencyComparisonText, latencyComparisonCode},
	{cpuComparisonText, cpuComparisonCode},
	{memoryComparisonText, memoryComparisonCode},
	{validatorImpactText, validatorImpactCode},
	{comparativeDashboardText, comparativeDashboardCode},
}

// interactiveCodes are the trailing analysis cells of a comparative
// notebook. They have no markdown headings of their own.
var interactiveCodes = []string{efficiencyCode, memoryVsTPSCode, heatmapCode}

// singleSections are the snippets for a single-configuration notebook.
var singleSections = []section{
	{singleTPSText, singleTPSCode},
	{singleLatencyText, singleLatencyCode},
}

const (
	introText = "This notebook provides an interactive analysis of UFO performance benchmark results. " +
		"It includes visualizations comparing different configurations and raw data for further analysis."

	benchmarkDataText  = "## Benchmark Data\n\nLet's load and explore the benchmark data."
	visualizationsText = "## Visualizations\n\nLet's create visualizations to analyze the benchmark results."
	interactiveText    = "## Interactive Analysis\n\nLet's create some additional interactive visualizations."
	reportHeadingText  = "## Benchmark Report\n\nBelow is the full benchmark report."

	tpsComparisonText        = "### TPS Comparison\n\nComparing transactions per second (TPS) across different configurations and block times."
	latencyComparisonText    = "### Latency Comparison\n\nComparing transaction latency across different configurations and block times."
	cpuComparisonText        = "### CPU Usage Comparison\n\nComparing CPU utilization across different configurations and block times."
	memoryComparisonText     = "### Memory Usage Comparison\n\nComparing memory utilization across different configurations and block times."
	validatorImpactText      = "### Validator Count Impact\n\nAnalyzing the impact of validator count on performance metrics."
	comparativeDashboardText = "### Comprehensive Dashboard\n\nA comprehensive view of all performance metrics."

	singleTPSText     = "### TPS vs Block Time\n\nVisualization of transactions per second (TPS) at different block times."
	singleLatencyText = "### Latency vs Block Time\n\nVisualization of transaction latency at different block times."

	conclusionText = "## Conclusion\n\n" +
		"This notebook provides an analysis of the UFO benchmark results, comparing performance across different configurations " +
		"and block times. The visualizations show how transaction throughput, latency, and resource usage are affected by " +
		"block time settings and validator counts.\n\n" +
		"Key metrics to consider:\n\n" +
		"* **TPS (Transactions Per Second)**: Higher is better, indicates throughput\n" +
		"* **Latency**: Lower is better, indicates responsiveness\n" +
		"* **Resource Usage**: Lower CPU and memory usage for the same TPS indicates better efficiency\n" +
		"* **TPS per CPU %**: Higher is better, indicates better performance efficiency\n" +
		"\n" +
		"All visualizations are saved to the `notebook_visualizations` directory for reference."
)

const importsPrologue = `import pandas as pd
import matplotlib.pyplot as plt
import matplotlib.colors as mcolors
import numpy as np
import seaborn as sns
import os

# Set up visualization style
plt.style.use('ggplot')
sns.set_theme(style="whitegrid")
%matplotlib inline
plt.rcParams['figure.figsize'] = [12, 8]

# Create visualizations directory for saving images
vis_dir = 'notebook_visualizations'
os.makedirs(vis_dir, exist_ok=True)

# Define colors for different configurations
`

const describeCode = `# Show basic statistics
df.describe()`

const configTypeCode = `# Create a combined configuration+validators column for easier analysis
df['config_type'] = df['configuration'] + '-' + df['validators'].astype(str)

# Show data for different configurations
for config in df['config_type'].unique():
    print(f"\nConfiguration: {config}")
    print(df[df['config_type'] == config][['block_time', 'tps', 'latency_ms', 'cpu_usage', 'memory_usage']].describe())
`

const tpsComparisonCode = `# Create TPS comparison visualization
plt.figure(figsize=(14, 8))

# Create a color map for configurations
# Use the new recommended way to get colormaps
cmap = plt.colormaps['tab10']
color_dict = {config: cmap(i % 10) for i, config in enumerate(sorted(df['config_type'].unique()))}

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    plt.plot(config_df['block_time'], config_df['tps'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])

plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('Transactions Per Second (TPS)', fontsize=12)
plt.title('TPS vs Block Time Comparison', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.legend(fontsize=10)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'tps_comparison.png'), dpi=300, bbox_inches='tight')
plt.show()`

const latencyComparisonCode = `# Create Latency comparison visualization
plt.figure(figsize=(14, 8))

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    plt.plot(config_df['block_time'], config_df['latency_ms'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])

plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('Latency (ms)', fontsize=12)
plt.title('Latency vs Block Time Comparison', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.legend(fontsize=10)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'latency_comparison.png'), dpi=300, bbox_inches='tight')
plt.show()`

const cpuComparisonCode = `# Create CPU usage comparison visualization
plt.figure(figsize=(14, 8))

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    plt.plot(config_df['block_time'], config_df['cpu_usage'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])

plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('CPU Usage (%)', fontsize=12)
plt.title('CPU Usage vs Block Time Comparison', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.legend(fontsize=10)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'cpu_comparison.png'), dpi=300, bbox_inches='tight')
plt.show()`

const memoryComparisonCode = `# Create Memory usage comparison visualization
plt.figure(figsize=(14, 8))

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    plt.plot(config_df['block_time'], config_df['memory_usage'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])

plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('Memory Usage (%)', fontsize=12)
plt.title('Memory Usage vs Block Time Comparison', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.legend(fontsize=10)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'memory_comparison.png'), dpi=300, bbox_inches='tight')
plt.show()`

const validatorImpactCode = `# Analyze Impact of Validator Count
# Group by configuration and validators
validator_impact = df.groupby(['configuration', 'validators'])['tps'].mean().reset_index()
validator_impact = validator_impact.pivot(index='configuration', columns='validators', values='tps')
validator_impact['impact_pct'] = ((validator_impact[4] - validator_impact[1]) / validator_impact[1]) * 100

print("Mean TPS by Configuration and Validator Count:")
print(validator_impact)

# Plot the impact
plt.figure(figsize=(10, 6))
bars = plt.bar(validator_impact.index, validator_impact['impact_pct'])

# Color the bars based on positive/negative impact
for i, bar in enumerate(bars):
    if validator_impact['impact_pct'].iloc[i] < 0:
        bar.set_color('firebrick')
    else:
        bar.set_color('forestgreen')

plt.axhline(y=0, color='black', linestyle='-', alpha=0.3)
plt.ylabel('% Change in TPS (1 → 4 validators)', fontsize=12)
plt.title('Impact of Increasing Validator Count from 1 to 4', fontsize=14)
plt.grid(True, axis='y', alpha=0.2)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'validator_impact.png'), dpi=300, bbox_inches='tight')
plt.show()`

const comparativeDashboardCode = `# Create a comprehensive dashboard with all metrics
fig = plt.figure(figsize=(16, 20))

# Use a more flexible GridSpec layout with more space between subplots
gs = fig.add_gridspec(4, 2, hspace=0.4, wspace=0.3)

# TPS comparison (top left)
ax1 = fig.add_subplot(gs[0, 0])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax1.plot(config_df['block_time'], config_df['tps'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])
ax1.set_xscale('log')
ax1.set_xlabel('Block Time (ms)')
ax1.set_ylabel('TPS')
ax1.set_title('TPS vs Block Time')
ax1.grid(True, which="both", ls="-", alpha=0.2)
ax1.legend(fontsize=8)

# Latency comparison (top right)
ax2 = fig.add_subplot(gs[0, 1])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax2.plot(config_df['block_time'], config_df['latency_ms'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])
ax2.set_xscale('log')
ax2.set_xlabel('Block Time (ms)')
ax2.set_ylabel('Latency (ms)')
ax2.set_title('Latency vs Block Time')
ax2.grid(True, which="both", ls="-", alpha=0.2)
ax2.legend(fontsize=8)

# CPU usage (middle left)
ax3 = fig.add_subplot(gs[1, 0])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax3.plot(config_df['block_time'], config_df['cpu_usage'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])
ax3.set_xscale('log')
ax3.set_xlabel('Block Time (ms)')
ax3.set_ylabel('CPU Usage (%)')
ax3.set_title('CPU Usage vs Block Time')
ax3.grid(True, which="both", ls="-", alpha=0.2)
ax3.legend(fontsize=8)

# Memory usage (middle right)
ax4 = fig.add_subplot(gs[1, 1])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax4.plot(config_df['block_time'], config_df['memory_usage'], 'o-',
             linewidth=2, label=CONFIG_NAMES.get(config, config),
             color=color_dict[config])
ax4.set_xscale('log')
ax4.set_xlabel('Block Time (ms)')
ax4.set_ylabel('Memory Usage (%)')
ax4.set_title('Memory Usage vs Block Time')
ax4.grid(True, which="both", ls="-", alpha=0.2)
ax4.legend(fontsize=8)

# TPS vs CPU Efficiency (bottom left)
ax5 = fig.add_subplot(gs[2, 0])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax5.scatter(config_df['cpu_usage'], config_df['tps'],
              label=CONFIG_NAMES.get(config, config),
              color=color_dict[config], s=100, alpha=0.7)
ax5.set_xlabel('CPU Usage (%)')
ax5.set_ylabel('TPS')
ax5.set_title('Performance Efficiency (TPS vs CPU)')
ax5.grid(True, alpha=0.2)
ax5.legend(fontsize=8)

# Memory vs TPS (bottom right)
ax6 = fig.add_subplot(gs[2, 1])
for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax6.scatter(config_df['memory_usage'], config_df['tps'],
              label=CONFIG_NAMES.get(config, config),
              color=color_dict[config], s=100, alpha=0.7)
ax6.set_xlabel('Memory Usage (%)')
ax6.set_ylabel('TPS')
ax6.set_title('Performance Efficiency (TPS vs Memory)')
ax6.grid(True, alpha=0.2)
ax6.legend(fontsize=8)

# Validator impact (bottom)
ax7 = fig.add_subplot(gs[3, :])
bars = ax7.bar(validator_impact.index, validator_impact['impact_pct'])
for i, bar in enumerate(bars):
    if validator_impact['impact_pct'].iloc[i] < 0:
        bar.set_color('firebrick')
    else:
        bar.set_color('forestgreen')
ax7.axhline(y=0, color='black', linestyle='-', alpha=0.3)
ax7.set_ylabel('% Change in TPS (1 → 4 validators)')
ax7.set_title('Impact of Increasing Validator Count from 1 to 4')
ax7.grid(True, axis='y', alpha=0.2)

# Add a main title with fixed position instead of using tight_layout
fig.suptitle('UFO Performance Benchmark - Comprehensive Dashboard', fontsize=16, y=0.99)

# Adjust the layout with specific padding to avoid warnings
fig.subplots_adjust(top=0.95, bottom=0.05, left=0.1, right=0.95)

# Save the figure
plt.savefig(os.path.join(vis_dir, 'comparative_dashboard.png'), dpi=300, bbox_inches='tight')
plt.show()`

const efficiencyCode = `# Performance Efficiency: TPS per CPU%
df['tps_per_cpu'] = df['tps'] / df['cpu_usage']

fig, ax = plt.subplots(figsize=(14, 8))

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    ax.plot(config_df['block_time'], config_df['tps_per_cpu'], 'o-',
            linewidth=2, label=CONFIG_NAMES.get(config, config),
            color=color_dict[config])

ax.set_xscale('log')
ax.set_xlabel('Block Time (ms)', fontsize=12)
ax.set_ylabel('TPS per CPU % (Efficiency)', fontsize=12)
ax.set_title('Processing Efficiency vs Block Time', fontsize=14)
ax.grid(True, which="both", ls="-", alpha=0.2)
ax.legend(fontsize=10)
plt.tight_layout()
plt.show()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'efficiency_comparison.png'), dpi=300, bbox_inches='tight')`

const memoryVsTPSCode = `# Memory Utilization vs TPS
plt.figure(figsize=(14, 8))

for config in sorted(df['config_type'].unique()):
    config_df = df[df['config_type'] == config]
    plt.scatter(config_df['tps'], config_df['memory_usage'],
                label=CONFIG_NAMES.get(config, config),
                color=color_dict[config], s=100, alpha=0.7)

plt.xlabel('Transactions Per Second (TPS)', fontsize=12)
plt.ylabel('Memory Usage (%)', fontsize=12)
plt.title('Memory Usage vs TPS by Configuration', fontsize=14)
plt.grid(True, alpha=0.2)
plt.legend(fontsize=10)
plt.tight_layout()
plt.show()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'memory_vs_tps.png'), dpi=300, bbox_inches='tight')`

const heatmapCode = `# Block Time Impact Heatmap
# Pivot the data to create a heatmap
heatmap_data = df.pivot_table(index='configuration', columns='block_time', values='tps')

# Create the heatmap
plt.figure(figsize=(14, 8))
sns.heatmap(heatmap_data, annot=True, fmt='.1f', cmap='viridis', linewidths=.5)
plt.title('TPS by Configuration and Block Time', fontsize=14)
plt.ylabel('Configuration', fontsize=12)
plt.xlabel('Block Time (ms)', fontsize=12)
plt.tight_layout()
plt.show()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'blocktime_heatmap.png'), dpi=300, bbox_inches='tight')`

const singleTPSCode = `# Create TPS vs Block Time visualization
plt.figure(figsize=(14, 8))
plt.plot(df['block_time'], df['tps'], 'o-', linewidth=2, color='tab:blue')
plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('Transactions Per Second (TPS)', fontsize=12)
plt.title('TPS vs Block Time', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'tps_vs_blocktime.png'), dpi=300, bbox_inches='tight')
plt.show()`

const singleLatencyCode = `# Create Latency vs Block Time visualization
plt.figure(figsize=(14, 8))
plt.plot(df['block_time'], df['latency_ms'], 'o-', linewidth=2, color='tab:orange')
plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('Latency (ms)', fontsize=12)
plt.title('Latency vs Block Time', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.tight_layout()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'latency_vs_blocktime.png'), dpi=300, bbox_inches='tight')
plt.show()`

const singleEfficiencyCode = `# Calculate performance efficiency (TPS per CPU%)
df['tps_per_cpu'] = df['tps'] / df['cpu_usage']

plt.figure(figsize=(14, 8))
plt.plot(df['block_time'], df['tps_per_cpu'], 'o-', linewidth=2, color='tab:green')
plt.xscale('log')
plt.xlabel('Block Time (ms)', fontsize=12)
plt.ylabel('TPS per CPU % (Efficiency)', fontsize=12)
plt.title('Processing Efficiency vs Block Time', fontsize=14)
plt.grid(True, which="both", ls="-", alpha=0.2)
plt.tight_layout()
plt.show()

# Save the figure
plt.savefig(os.path.join(vis_dir, 'efficiency_vs_blocktime.png'), dpi=300, bbox_inches='tight')`

// titleCell opens the notebook with the run name as its heading.
func titleCell(runName string) Cell {
	return MarkdownCell(fmt.Sprintf("# %s\n\n%s", runName, introText))
}

// importsCell sets up the plotting environment and interpolates the
// palette's base tables into the CONFIG_COLORS and CONFIG_NAMES literals.
// Keys are emitted in sorted order so regeneration is deterministic.
func importsCell(p style.Palette) Cell {
	var b strings.Builder

	b.WriteString(importsPrologue)
	b.WriteString("CONFIG_COLORS = {\n")
	for _, name := range sortedKeys(p.Base) {
		fmt.Fprintf(&b, "    %s: %s,\n", pyString(name), pyString(p.Base[name]))
	}
	b.WriteString("}\n\nCONFIG_NAMES = {\n")
	for _, name := range sortedKeys(p.BaseLabels) {
		fmt.Fprintf(&b, "    %s: %s,\n", pyString(name), pyString(p.BaseLabels[name]))
	}
	b.WriteString("}")

	return CodeCell(b.String())
}

// loadDataCell reads the results CSV from the given path, which should be
// relative to the notebook so the cell works wherever the output directory
// lands.
func loadDataCell(csvPath string) Cell {
	return CodeCell(fmt.Sprintf("# Load benchmark data from CSV\ndf = pd.read_csv(%s)\ndf.head()", pyString(csvPath)))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// pyString quotes s as a single-quoted Python string literal.
func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}
